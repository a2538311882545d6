package sidenote

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// Session owns the note numbering for exactly one render pass. The counter
// starts at zero and Next hands out 1, 2, 3, … in call order; after K calls
// Count reports K. Numbering never leaks across sessions: processing a second
// document with a fresh session starts at 1 again.
//
// A mutex guards the counter so a session shared by accident still numbers
// without gaps, but the supported contract is one document rendered
// sequentially per session.
type Session struct {
	id string

	mu    sync.Mutex
	count int
}

// NewSession starts a fresh numbering session. Construction is the reset
// boundary: callers decide when numbering restarts by deciding when to build
// a new session, typically once per document render.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Next increments the counter and returns its new value.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return s.count
}

// Count returns the number of notes handed out so far.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

var _ interfaces.NoteSequence = (*Session)(nil)
