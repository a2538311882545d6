package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var bracketTagPattern = regexp.MustCompile(`\[(\/?)([a-zA-Z0-9_\-]+)([^\]]*)\]`)

// BracketPreprocessor converts bracket-style directives ([name]...[/name])
// into the canonical Liquid syntax so a single parser handles both spellings.
type BracketPreprocessor struct {
	names map[string]struct{}
}

// NewBracketPreprocessor constructs a preprocessor limited to the supplied
// directive names. Restricting the rewrite avoids mangling ordinary prose in
// square brackets, e.g. Markdown link labels.
func NewBracketPreprocessor(names ...string) *BracketPreprocessor {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		if trimmed := strings.ToLower(strings.TrimSpace(name)); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}
	return &BracketPreprocessor{names: known}
}

// Process rewrites known bracket directives into Liquid-style equivalents.
func (p *BracketPreprocessor) Process(content string) string {
	if !strings.Contains(content, "[") {
		return content
	}

	return bracketTagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		matches := bracketTagPattern.FindStringSubmatch(tag)
		if len(matches) < 3 {
			return tag
		}

		isClosing := matches[1] == "/"
		name := matches[2]
		rawAttr := strings.TrimSpace(matches[3])

		if _, known := p.names[strings.ToLower(name)]; !known {
			return tag
		}

		if isClosing {
			return fmt.Sprintf("{%% end%s %%}", name)
		}

		return fmt.Sprintf("{%% %s%s %%}", name, formatAttributes(rawAttr))
	})
}

func formatAttributes(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return " " + raw
}
