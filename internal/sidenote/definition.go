package sidenote

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// DirectiveName is the name the numbered sidenote directive registers under.
const DirectiveName = "sidenote"

// MarginDirectiveName is the name of the unnumbered margin note directive.
const MarginDirectiveName = "marginnote"

// ErrNoSequence is returned when a numbered directive renders without a
// session in its context. Numbering is owned by the render pass, never by the
// definition, so a missing sequence is a wiring bug in the caller.
var ErrNoSequence = errors.New("sidenote: render context has no note sequence")

// BuiltInDefinitions returns the directive catalogue shipped with go-sidenote.
func BuiltInDefinitions() []interfaces.Definition {
	return []interfaces.Definition{
		Definition(),
		MarginDefinition(),
	}
}

// Definition describes the numbered sidenote directive. Each render draws the
// next number from the session carried in the render context and emits the
// cross-linked note/reference anchor pair.
func Definition() interfaces.Definition {
	return interfaces.Definition{
		Name:        DirectiveName,
		Version:     "1.0.0",
		Description: "Numbered sidenote with a cross-linked reference marker",
		Category:    "content",
		AllowInner:  true,
		Handler: func(ctx interfaces.RenderContext, _ map[string]any, inner string) (template.HTML, error) {
			if ctx.Sequence == nil {
				return "", ErrNoSequence
			}
			n := ctx.Sequence.Next()
			return template.HTML(Fragment(n, encodeInner(ctx, inner))), nil
		},
	}
}

// MarginDefinition describes the unnumbered margin note directive. It shares
// the sidenote encoding rules but never touches the session counter.
func MarginDefinition() interfaces.Definition {
	return interfaces.Definition{
		Name:        MarginDirectiveName,
		Version:     "1.0.0",
		Description: "Unnumbered margin note",
		Category:    "content",
		AllowInner:  true,
		Handler: func(ctx interfaces.RenderContext, _ map[string]any, inner string) (template.HTML, error) {
			return template.HTML(MarginFragment(encodeInner(ctx, inner))), nil
		},
	}
}

// RegisterBuiltIns registers the built-in directive definitions on the
// provided registry. When names is empty, every built-in is registered.
func RegisterBuiltIns(registry interfaces.DirectiveRegistry, names []string) error {
	if registry == nil {
		return fmt.Errorf("sidenote: registry is required")
	}

	available := make(map[string]interfaces.Definition)
	for _, def := range BuiltInDefinitions() {
		available[strings.ToLower(strings.TrimSpace(def.Name))] = def
	}

	if len(names) == 0 {
		for _, def := range available {
			if err := registry.Register(def); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		def, ok := available[key]
		if !ok {
			return fmt.Errorf("sidenote: built-in %q not found", name)
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// encodeInner applies the configured encoding boundary: escaped by default,
// sanitised when the caller explicitly opted into raw inner text.
func encodeInner(ctx interfaces.RenderContext, inner string) string {
	if ctx.RawInner && ctx.Sanitizer != nil {
		return ctx.Sanitizer.SanitizeInner(inner)
	}
	return EscapeText(inner)
}
