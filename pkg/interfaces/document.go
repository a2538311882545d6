package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML once
// directive fragments have been spliced into the body. Implementations should
// be reusable across render passes without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode suppresses raw inline HTML in the source document. Directive
	// fragments are spliced before Markdown conversion, so safe mode strips
	// them too; leave it off for documents that use directives.
	SafeMode bool
}

// RenderPassService exposes the per-document workflows: directive processing,
// Markdown conversion, and single-file loading. One render pass handles one
// document; numbering state never leaks across calls.
type RenderPassService interface {
	Process(ctx context.Context, content string, opts ProcessOptions) (string, error)
	RenderDocument(ctx context.Context, doc *Document, opts ProcessOptions) ([]byte, error)
	Load(ctx context.Context, path string) (*Document, error)
}

// ProcessOptions tunes a single render pass.
type ProcessOptions struct {
	// Sequence overrides the numbering source. When nil the service starts a
	// fresh session, which is what almost every caller wants: numbering
	// restarts at 1 for each document.
	Sequence NoteSequence
	// RawInner forwards author text to directives without HTML escaping; the
	// configured sanitizer runs on the raw text instead.
	RawInner bool
	// EnableBracketSyntax additionally recognises [name]...[/name] directive
	// spellings by rewriting them to the canonical {% name %} form first.
	EnableBracketSyntax bool
	// Parser overrides the Markdown conversion options for RenderDocument.
	Parser ParseOptions
}

// Document represents a single Markdown source file with parsed metadata.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}

// FrontMatter models metadata extracted from Markdown files. The Custom map
// keeps template- or site-specific values reachable without schema churn.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
}
