package sidenote

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(html string) (string, error) { return html, nil }
func (passthroughSanitizer) SanitizeInner(text string) string {
	return strings.ReplaceAll(text, "<script>", "")
}

func TestSidenoteHandler_NumbersInCallOrder(t *testing.T) {
	def := Definition()
	session := NewSession()
	ctx := interfaces.RenderContext{Sequence: session}

	first, err := def.Handler(ctx, nil, "A")
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}
	second, err := def.Handler(ctx, nil, "B")
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}

	if !strings.Contains(string(first), `id="sn-1"`) || !strings.Contains(string(first), "&nbsp;A") {
		t.Fatalf("first fragment wrong: %s", first)
	}
	if !strings.Contains(string(second), `id="sn-2"`) || !strings.Contains(string(second), "&nbsp;B") {
		t.Fatalf("second fragment wrong: %s", second)
	}
	if strings.Contains(string(second), `sn-1`) {
		t.Fatalf("second fragment leaked first ids: %s", second)
	}
}

func TestSidenoteHandler_ConcreteScenario(t *testing.T) {
	def := Definition()
	ctx := interfaces.RenderContext{Sequence: NewSession()}

	html, err := def.Handler(ctx, nil, "Hello")
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}

	got := string(html)
	for _, want := range []string{
		`id="sn-1"`,
		`data-sidenote-number="1"`,
		`<sup class="sidenote-number">1</sup>`,
		"Hello",
		`href="#sn-ref-1"`,
		`id="sn-ref-1"`,
		`<a href="#sn-1">1</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("fragment missing %q:\n%s", want, got)
		}
	}
}

func TestSidenoteHandler_EscapesInnerByDefault(t *testing.T) {
	def := Definition()
	ctx := interfaces.RenderContext{Sequence: NewSession()}

	html, err := def.Handler(ctx, nil, `<img src=x onerror=alert(1)>`)
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}
	if strings.Contains(string(html), "<img") {
		t.Fatalf("expected escaped inner text, got %s", html)
	}
	if !strings.Contains(string(html), "&lt;img") {
		t.Fatalf("expected entity-encoded inner text, got %s", html)
	}
}

func TestSidenoteHandler_RawInnerUsesSanitizer(t *testing.T) {
	def := Definition()
	ctx := interfaces.RenderContext{
		Sequence:  NewSession(),
		Sanitizer: passthroughSanitizer{},
		RawInner:  true,
	}

	html, err := def.Handler(ctx, nil, "<em>kept</em><script>dropped")
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}
	if !strings.Contains(string(html), "<em>kept</em>") {
		t.Fatalf("expected raw markup preserved, got %s", html)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected sanitizer to run on raw text, got %s", html)
	}
}

func TestSidenoteHandler_MissingSequence(t *testing.T) {
	def := Definition()

	_, err := def.Handler(interfaces.RenderContext{}, nil, "text")
	if !errors.Is(err, ErrNoSequence) {
		t.Fatalf("expected ErrNoSequence, got %v", err)
	}
}

func TestMarginHandler_IgnoresSequence(t *testing.T) {
	def := MarginDefinition()
	session := NewSession()
	ctx := interfaces.RenderContext{Sequence: session}

	html, err := def.Handler(ctx, nil, "aside")
	if err != nil {
		t.Fatalf("Handler() error: %v", err)
	}
	if string(html) != `<span class="marginnote">aside</span>` {
		t.Fatalf("margin fragment wrong: %s", html)
	}
	if session.Count() != 0 {
		t.Fatalf("margin note consumed a number, count %d", session.Count())
	}
}

func TestRegisterBuiltIns_All(t *testing.T) {
	registry := &stubRegistry{definitions: map[string]interfaces.Definition{}}

	if err := RegisterBuiltIns(registry, nil); err != nil {
		t.Fatalf("RegisterBuiltIns() error: %v", err)
	}
	if len(registry.definitions) != 2 {
		t.Fatalf("expected 2 built-ins registered, got %d", len(registry.definitions))
	}
}

func TestRegisterBuiltIns_UnknownName(t *testing.T) {
	registry := &stubRegistry{definitions: map[string]interfaces.Definition{}}

	if err := RegisterBuiltIns(registry, []string{"sidebar"}); err == nil {
		t.Fatal("expected error for unknown built-in name")
	}
}

type stubRegistry struct {
	definitions map[string]interfaces.Definition
}

func (r *stubRegistry) Register(def interfaces.Definition) error {
	r.definitions[def.Name] = def
	return nil
}

func (r *stubRegistry) Get(name string) (interfaces.Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

func (r *stubRegistry) List() []interfaces.Definition { return nil }

func (r *stubRegistry) Remove(string) {}
