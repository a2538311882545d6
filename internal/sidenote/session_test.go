package sidenote

import (
	"sync"
	"testing"
)

func TestSession_NextIsSequential(t *testing.T) {
	session := NewSession()

	for want := 1; want <= 25; want++ {
		if got := session.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}

	if got := session.Count(); got != 25 {
		t.Fatalf("Count() = %d, want 25", got)
	}
}

func TestSession_FreshSessionRestartsAtOne(t *testing.T) {
	first := NewSession()
	for i := 0; i < 7; i++ {
		first.Next()
	}

	second := NewSession()
	if got := second.Next(); got != 1 {
		t.Fatalf("fresh session Next() = %d, want 1", got)
	}
	if got := first.Count(); got != 7 {
		t.Fatalf("existing session Count() changed to %d", got)
	}
}

func TestSession_IDsAreUnique(t *testing.T) {
	a, b := NewSession(), NewSession()
	if a.ID() == "" {
		t.Fatal("expected non-empty session id")
	}
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct session ids, both %s", a.ID())
	}
}

func TestSession_NoGapsUnderConcurrency(t *testing.T) {
	session := NewSession()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	seen := make(chan int, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				seen <- session.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	got := make(map[int]bool, workers*perWorker)
	for n := range seen {
		if got[n] {
			t.Fatalf("number %d handed out twice", n)
		}
		got[n] = true
	}
	if len(got) != workers*perWorker {
		t.Fatalf("expected %d unique numbers, got %d", workers*perWorker, len(got))
	}
	if session.Count() != workers*perWorker {
		t.Fatalf("Count() = %d, want %d", session.Count(), workers*perWorker)
	}
}
