package directive

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

func TestRenderer_RendersRegisteredDirective(t *testing.T) {
	registry := NewRegistry(NewValidator())
	def := interfaces.Definition{
		Name: "shout",
		Schema: interfaces.Schema{
			Params: []interfaces.Param{
				{Name: "punct", Type: interfaces.ParamString, Default: "!"},
			},
		},
		Handler: func(_ interfaces.RenderContext, params map[string]any, inner string) (template.HTML, error) {
			return template.HTML("<b>" + strings.ToUpper(inner) + params["punct"].(string) + "</b>"), nil
		},
	}
	if err := registry.Register(def); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer := NewRenderer(registry, NewValidator())

	html, err := renderer.Render(interfaces.RenderContext{}, "shout", nil, "hey")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(html) != "<b>HEY!</b>" {
		t.Fatalf("Render() = %s", html)
	}
}

func TestRenderer_UnknownDirective(t *testing.T) {
	renderer := NewRenderer(NewRegistry(NewValidator()), NewValidator())

	_, err := renderer.Render(interfaces.RenderContext{}, "missing", nil, "")
	if !errors.Is(err, ErrUnknownDirective) {
		t.Fatalf("expected ErrUnknownDirective, got %v", err)
	}
}

func TestRenderer_SanitizerBlocksScript(t *testing.T) {
	registry := NewRegistry(NewValidator())
	malicious := interfaces.Definition{
		Name: "bad",
		Handler: func(interfaces.RenderContext, map[string]any, string) (template.HTML, error) {
			return template.HTML(`<script>alert('xss')</script>`), nil
		},
	}
	if err := registry.Register(malicious); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer := NewRenderer(registry, NewValidator())
	_, err := renderer.Render(interfaces.RenderContext{}, "bad", nil, "")
	if err == nil {
		t.Fatal("expected sanitizer error")
	}
}

func TestRenderer_ContextSanitizerOverride(t *testing.T) {
	registry := NewRegistry(NewValidator())
	def := interfaces.Definition{
		Name: "echo",
		Handler: func(ctx interfaces.RenderContext, _ map[string]any, inner string) (template.HTML, error) {
			return template.HTML(inner), nil
		},
	}
	if err := registry.Register(def); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer := NewRenderer(registry, NewValidator())
	ctx := interfaces.RenderContext{Sanitizer: rejectAllSanitizer{}}

	if _, err := renderer.Render(ctx, "echo", nil, "anything"); err == nil {
		t.Fatal("expected override sanitizer to reject output")
	}
}

func TestRenderer_ParamCoercionErrorSurfaces(t *testing.T) {
	registry := NewRegistry(NewValidator())
	def := interfaces.Definition{
		Name: "counted",
		Schema: interfaces.Schema{
			Params: []interfaces.Param{
				{Name: "n", Type: interfaces.ParamInt},
			},
		},
		Handler: func(interfaces.RenderContext, map[string]any, string) (template.HTML, error) {
			return "", nil
		},
	}
	if err := registry.Register(def); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer := NewRenderer(registry, NewValidator())
	_, err := renderer.Render(interfaces.RenderContext{}, "counted", map[string]any{"n": "NaN"}, "")
	if !errors.Is(err, ErrParameterType) {
		t.Fatalf("expected ErrParameterType, got %v", err)
	}
}

func TestRenderer_LogsRenderedDirectives(t *testing.T) {
	registry := NewRegistry(NewValidator())
	if err := registry.Register(interfaces.Definition{Name: "echo", Handler: echoHandler}); err != nil {
		t.Fatalf("register: %v", err)
	}

	logger := &captureLogger{}
	renderer := NewRenderer(registry, NewValidator(), WithRendererLogger(logger))

	if _, err := renderer.Render(interfaces.RenderContext{}, "echo", nil, "hi"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if len(logger.debug) != 1 || logger.debug[0] != "directive.rendered" {
		t.Fatalf("debug entries = %v", logger.debug)
	}
}

type captureLogger struct {
	debug []string
}

func (l *captureLogger) Trace(string, ...any) {}
func (l *captureLogger) Debug(msg string, _ ...any) {
	l.debug = append(l.debug, msg)
}
func (l *captureLogger) Info(string, ...any)  {}
func (l *captureLogger) Warn(string, ...any)  {}
func (l *captureLogger) Error(string, ...any) {}
func (l *captureLogger) Fatal(string, ...any) {}

func (l *captureLogger) WithContext(context.Context) interfaces.Logger { return l }

type rejectAllSanitizer struct{}

func (rejectAllSanitizer) Sanitize(string) (string, error) {
	return "", errors.New("rejected")
}

func (rejectAllSanitizer) SanitizeInner(text string) string { return text }
