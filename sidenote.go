// Package sidenote renders numbered sidenotes for Markdown content. A
// directive such as {% sidenote %}like this{% endsidenote %} becomes a pair
// of cross-linked HTML anchors: the note body (id sn-N) and its reference
// marker (id sn-ref-N), numbered 1, 2, 3, … in document order. Numbering is
// owned by an explicit per-document session, so concurrent render passes
// never share state.
package sidenote

import (
	"github.com/goliatone/go-sidenote/internal/directive"
	parserpkg "github.com/goliatone/go-sidenote/internal/directive/parser"
	"github.com/goliatone/go-sidenote/internal/logging"
	"github.com/goliatone/go-sidenote/internal/logging/gologger"
	"github.com/goliatone/go-sidenote/internal/markdown"
	"github.com/goliatone/go-sidenote/internal/renderpass"
	notes "github.com/goliatone/go-sidenote/internal/sidenote"
	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// DirectiveName is the registration name of the numbered sidenote directive.
const DirectiveName = notes.DirectiveName

// MarginDirectiveName is the registration name of the margin note directive.
const MarginDirectiveName = notes.MarginDirectiveName

// Anchor and class names emitted by the fragment builder. These are the
// contract stylesheets and scripts depend on.
const (
	ClassNote      = notes.ClassNote
	ClassNumber    = notes.ClassNumber
	ClassBack      = notes.ClassBack
	ClassMargin    = notes.ClassMargin
	DataNumberAttr = notes.DataNumberAttr
)

// Session owns the note numbering for one render pass.
type Session = notes.Session

// Registry exports the directive registry implementation.
type Registry = directive.Registry

// RenderPassService exports the per-document service contract.
type RenderPassService = interfaces.RenderPassService

// Document exports the single-file document model.
type Document = interfaces.Document

// FrontMatter exports the document metadata model.
type FrontMatter = interfaces.FrontMatter

// ProcessOptions exports the per-pass options.
type ProcessOptions = interfaces.ProcessOptions

// Definition exports the directive definition model so hosts can register
// their own directives alongside the built-ins.
type Definition = interfaces.Definition

// NewSession starts a fresh numbering session. Build one per document render;
// the first note rendered against it is number 1 regardless of prior
// sessions.
func NewSession() *Session {
	return notes.NewSession()
}

// NoteID returns the note anchor id for number n.
func NoteID(n int) string { return notes.NoteID(n) }

// RefID returns the reference anchor id for number n.
func RefID(n int) string { return notes.RefID(n) }

// Module is the assembled runtime: registry, renderer, and render pass
// service wired from one Config.
type Module struct {
	registry *directive.Registry
	renderer *directive.Renderer
	service  *renderpass.Service
}

// New assembles a Module from the supplied configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	validator := directive.NewValidator()
	registry := directive.NewRegistry(validator)
	if err := notes.RegisterBuiltIns(registry, cfg.Directives.BuiltIns); err != nil {
		return nil, err
	}

	provider, err := buildLoggerProvider(cfg.Logging)
	if err != nil {
		return nil, err
	}

	renderer := directive.NewRenderer(registry, validator,
		directive.WithRendererLogger(logging.DirectiveLogger(provider)),
	)

	service := renderpass.NewService(registry, renderer,
		renderpass.WithLogger(logging.RenderPassLogger(provider)),
		renderpass.WithBracketSyntax(cfg.Directives.BracketSyntax),
		renderpass.WithRawInner(cfg.Directives.RawInner),
		renderpass.WithParser(parserpkg.NewLiquidParser()),
		renderpass.WithMarkdownParser(markdown.NewGoldmarkParser(cfg.Markdown.parseOptions())),
	)

	return &Module{
		registry: registry,
		renderer: renderer,
		service:  service,
	}, nil
}

// Service returns the render pass service.
func (m *Module) Service() RenderPassService {
	return m.service
}

// Registry returns the directive registry so hosts can add definitions.
func (m *Module) Registry() interfaces.DirectiveRegistry {
	return m.registry
}

// Renderer returns the directive renderer for hosts that splice fragments
// into their own templating pipelines.
func (m *Module) Renderer() interfaces.DirectiveRenderer {
	return m.renderer
}

// buildLoggerProvider returns the provider the module loggers draw from. A nil
// provider is valid: every namespace helper falls back to a no-op logger.
func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "", LoggingProviderNoop:
		return nil, nil
	case LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, nil
	}
}
