package interfaces

import (
	"context"
	"html/template"
	"time"
)

// DirectiveRegistry describes the lifecycle contract for registering and
// resolving directive definitions. Implementations must be safe for
// concurrent use.
type DirectiveRegistry interface {
	// Register stores a definition and returns an error when a directive
	// with the same name already exists or the definition fails validation.
	Register(definition Definition) error

	// Get returns the definition for the supplied directive name.
	Get(name string) (Definition, bool)

	// List exposes the current catalogue, sorted at the implementor's discretion.
	List() []Definition

	// Remove deletes the directive from the registry. Removing an unknown
	// directive must be a no-op.
	Remove(name string)
}

// DirectiveRenderer executes a directive definition and returns HTML output.
type DirectiveRenderer interface {
	Render(ctx RenderContext, directive string, params map[string]any, inner string) (template.HTML, error)
}

// DirectiveParser extracts directive invocations from arbitrary content.
type DirectiveParser interface {
	Parse(content string) ([]ParsedDirective, error)
	Extract(content string) (placeholders string, directives []ParsedDirective, err error)
}

// DirectiveSanitizer encapsulates sanitisation helpers applied to inner text
// and rendered output.
type DirectiveSanitizer interface {
	Sanitize(html string) (string, error)
	SanitizeInner(text string) string
}

// DirectiveMetrics records render telemetry. Implementations must tolerate
// concurrent observations.
type DirectiveMetrics interface {
	ObserveRenderDuration(directive string, elapsed time.Duration)
	IncrementRenderError(directive string)
}

// Definition captures the metadata, validation schema, and handler that the
// registry stores for one directive name.
type Definition struct {
	Name        string
	Version     string
	Description string
	Category    string
	AllowInner  bool
	Schema      Schema
	Handler     Handler
}

// Schema defines the contract for parameters accepted by a directive.
type Schema struct {
	Params   []Param
	Defaults map[string]any
}

// Param describes a single parameter, including optional custom validation.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
	Default  any
	Validate ParamValidator
}

// ParamType enumerates the supported parameter coercions.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
	ParamBool   ParamType = "bool"
)

// ParamValidator allows definitions to perform custom validation.
type ParamValidator func(value any) error

// Handler executes the directive with resolved parameters and the literal
// inner text supplied by the document author.
type Handler func(ctx RenderContext, params map[string]any, inner string) (template.HTML, error)

// NoteSequence is the numbering source a render pass threads through to
// stateful directives. Next returns 1 on the first call after a reset and
// increases by exactly one per call.
type NoteSequence interface {
	Next() int
	Count() int
}

// RenderContext provides runtime metadata surfaced during rendering. Sequence
// carries the per-render-pass note numbering; directives that do not number
// their output may ignore it.
type RenderContext struct {
	Context   context.Context
	Sequence  NoteSequence
	Sanitizer DirectiveSanitizer
	// RawInner disables the default HTML escaping of inner text. The
	// sanitizer is applied to the raw text instead.
	RawInner bool
}

// ParsedDirective represents a parsed invocation discovered by the parser layer.
type ParsedDirective struct {
	Name   string
	Params map[string]any
	Inner  string
}
