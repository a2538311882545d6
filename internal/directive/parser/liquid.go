package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

var (
	startTagPattern = regexp.MustCompile(`\{%\s*([a-zA-Z0-9_\-]+)([^%}]*)%\}`)
	endTagPattern   = regexp.MustCompile(`\{%\s*end([a-zA-Z0-9_\-]+)\s*%\}`)
)

// LiquidParser parses Liquid-style block directives
// ({% name %}inner{% endname %}).
type LiquidParser struct {
}

// NewLiquidParser creates a parser instance.
func NewLiquidParser() *LiquidParser {
	return &LiquidParser{}
}

// Parse returns the list of parsed directives in the content, in document order.
func (p *LiquidParser) Parse(content string) ([]interfaces.ParsedDirective, error) {
	_, directives, err := p.Extract(content)
	return directives, err
}

// Extract replaces directives with placeholders and returns both the
// transformed content and the extracted invocations. Directives are reported
// in the order their closing tags appear, which for non-nested usage is
// document order.
func (p *LiquidParser) Extract(content string) (string, []interfaces.ParsedDirective, error) {
	type stackEntry struct {
		name       string
		startIndex int
		params     map[string]any
	}

	var (
		result     []rune
		directives []interfaces.ParsedDirective
		stack      []stackEntry
		position   int
	)

	appendString := func(s string) {
		result = append(result, []rune(s)...)
	}

	for position < len(content) {
		loc := startTagPattern.FindStringIndex(content[position:])
		endLoc := endTagPattern.FindStringIndex(content[position:])

		if loc == nil && endLoc == nil {
			appendString(content[position:])
			break
		}

		startPos := -1
		if loc != nil {
			startPos = position + loc[0]
		}

		endPos := -1
		if endLoc != nil {
			endPos = position + endLoc[0]
		}

		if startPos >= 0 && (endPos == -1 || startPos < endPos) {
			// append text preceding tag
			appendString(content[position:startPos])

			matches := startTagPattern.FindStringSubmatch(content[startPos:])
			if len(matches) < 2 {
				return "", nil, fmt.Errorf("invalid directive start tag at position %d", startPos)
			}
			name := matches[1]
			rawParams := strings.TrimSpace(matches[2])
			params := parseParams(rawParams)

			// A start tag without a matching end tag downstream is treated as
			// self-closing with empty inner text.
			remainder := content[startPos+len(matches[0]):]
			endMatcher := regexp.MustCompile(fmt.Sprintf(`\{%%\s*end%s\s*%%\}`, regexp.QuoteMeta(name)))
			if loc := endMatcher.FindStringIndex(remainder); loc == nil {
				placeholder := fmt.Sprintf(placeholderFormat, len(directives))
				appendString(placeholder)
				directives = append(directives, interfaces.ParsedDirective{
					Name:   name,
					Params: params,
				})
				position = startPos + len(matches[0])
				continue
			}

			stack = append(stack, stackEntry{
				name:       name,
				startIndex: len(result),
				params:     params,
			})

			position = startPos + len(matches[0])
			continue
		}

		if endPos >= 0 {
			appendString(content[position:endPos])

			matches := endTagPattern.FindStringSubmatch(content[endPos:])
			if len(matches) < 2 {
				return "", nil, fmt.Errorf("invalid directive end tag at position %d", endPos)
			}
			name := matches[1]
			if len(stack) == 0 {
				return "", nil, fmt.Errorf("unexpected closing directive %s at position %d", name, endPos)
			}

			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if entry.name != name {
				return "", nil, fmt.Errorf("mismatched directive end tag %s, expected %s", name, entry.name)
			}

			inner := string(result[entry.startIndex:])
			result = result[:entry.startIndex]

			placeholder := fmt.Sprintf(placeholderFormat, len(directives))
			appendString(placeholder)

			directives = append(directives, interfaces.ParsedDirective{
				Name:   name,
				Params: entry.params,
				Inner:  inner,
			})

			position = endPos + len(matches[0])
			continue
		}
	}

	if len(stack) > 0 {
		return "", nil, fmt.Errorf("unterminated directive %s", stack[len(stack)-1].name)
	}

	return string(result), directives, nil
}

// placeholderFormat is the marker emitted when extracting directives.
const placeholderFormat = "<!-- directive:%d -->"

// Placeholder returns the marker the parser emits for the directive at idx.
func Placeholder(idx int) string {
	return fmt.Sprintf(placeholderFormat, idx)
}

func parseParams(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	parts := strings.Fields(raw)
	params := make(map[string]any, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			key := strings.TrimSpace(kv[0])
			value := strings.Trim(kv[1], `"`)
			params[key] = value
		} else {
			params[fmt.Sprintf("param%d", len(params)+1)] = strings.Trim(part, `"`)
		}
	}
	return params
}
