package directive

import (
	"context"
	"fmt"
	"html/template"

	"github.com/goliatone/go-sidenote/internal/logging"
	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// Renderer executes directive definitions and produces sanitised HTML output.
//
// The renderer itself holds no numbering state: stateful directives read the
// NoteSequence carried by the render context, so a renderer instance can be
// shared across render passes without cross-document contamination.
type Renderer struct {
	registry  interfaces.DirectiveRegistry
	validator *Validator
	sanitizer interfaces.DirectiveSanitizer
	logger    interfaces.Logger
}

// RendererOption configures the renderer instance.
type RendererOption func(*Renderer)

// WithRendererSanitizer overrides the default sanitizer.
func WithRendererSanitizer(s interfaces.DirectiveSanitizer) RendererOption {
	return func(r *Renderer) {
		r.sanitizer = s
	}
}

// WithRendererLogger attaches a logger used for per-directive diagnostics.
func WithRendererLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs a renderer using the provided registry and validator.
func NewRenderer(registry interfaces.DirectiveRegistry, validator *Validator, opts ...RendererOption) *Renderer {
	r := &Renderer{
		registry:  registry,
		validator: validator,
		sanitizer: NewSanitizer(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes the directive and returns sanitised HTML.
func (r *Renderer) Render(ctx interfaces.RenderContext, directive string, params map[string]any, inner string) (template.HTML, error) {
	def, ok := r.registry.Get(directive)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDirective, directive)
	}

	coerced, err := r.validator.CoerceParams(def, params)
	if err != nil {
		return "", err
	}

	if def.Handler == nil {
		return "", fmt.Errorf("directive: definition %s has no handler", directive)
	}

	if ctx.Context == nil {
		ctx.Context = context.Background()
	}
	if ctx.Sanitizer == nil {
		ctx.Sanitizer = r.sanitizer
	}

	result, err := def.Handler(ctx, coerced, inner)
	if err != nil {
		return "", err
	}

	sanitised, err := ctx.Sanitizer.Sanitize(string(result))
	if err != nil {
		return "", err
	}

	logging.WithFields(r.logger, map[string]any{
		"directive": directive,
	}).Debug("directive.rendered")

	return template.HTML(sanitised), nil
}

// Ensure Renderer implements interfaces.DirectiveRenderer.
var _ interfaces.DirectiveRenderer = (*Renderer)(nil)
