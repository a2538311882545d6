package renderpass

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-sidenote/internal/directive"
	parserpkg "github.com/goliatone/go-sidenote/internal/directive/parser"
	"github.com/goliatone/go-sidenote/internal/logging"
	"github.com/goliatone/go-sidenote/internal/markdown"
	"github.com/goliatone/go-sidenote/internal/sidenote"
	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// Service orchestrates one render pass per call: directive extraction,
// fragment rendering against a per-pass session, splicing, and Markdown
// conversion. The service itself is stateless across calls, so a single
// instance can serve any number of documents; each Process call numbers from
// 1 unless the caller supplies its own sequence.
type Service struct {
	registry         interfaces.DirectiveRegistry
	renderer         interfaces.DirectiveRenderer
	parser           interfaces.DirectiveParser
	markdownParser   interfaces.MarkdownParser
	defaultSanitizer interfaces.DirectiveSanitizer
	logger           interfaces.Logger
	metrics          interfaces.DirectiveMetrics
	bracketEnabled   bool
	rawInner         bool
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithBracketSyntax toggles support for the bracket-style [name] directive
// spelling in addition to the canonical {% name %} form.
func WithBracketSyntax(enabled bool) ServiceOption {
	return func(s *Service) {
		s.bracketEnabled = enabled
	}
}

// WithRawInner forwards author text to directives unescaped by default; the
// sanitizer runs on the raw text instead. Callers can still flip this per
// pass through ProcessOptions.
func WithRawInner(enabled bool) ServiceOption {
	return func(s *Service) {
		s.rawInner = enabled
	}
}

// WithDefaultSanitizer overrides the fallback sanitizer used when none is
// supplied at call time.
func WithDefaultSanitizer(sanitizer interfaces.DirectiveSanitizer) ServiceOption {
	return func(s *Service) {
		if sanitizer != nil {
			s.defaultSanitizer = sanitizer
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.DirectiveMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithParser overrides the Liquid-style parser used to extract directives.
func WithParser(parser interfaces.DirectiveParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithMarkdownParser overrides the Markdown parser used by RenderDocument.
func WithMarkdownParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.markdownParser = parser
		}
	}
}

// NewService constructs a render pass service using the supplied registry and
// renderer.
func NewService(registry interfaces.DirectiveRegistry, renderer interfaces.DirectiveRenderer, opts ...ServiceOption) *Service {
	service := &Service{
		registry:         registry,
		renderer:         renderer,
		parser:           parserpkg.NewLiquidParser(),
		markdownParser:   markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		defaultSanitizer: directive.NewSanitizer(),
		logger:           logging.NoOp(),
		metrics:          directive.NoOpMetrics(),
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Process renders any directives found within the content string, splicing
// each fragment in at the directive's site in document order.
func (s *Service) Process(ctx context.Context, content string, opts interfaces.ProcessOptions) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if s.renderer == nil || s.parser == nil {
		return "", fmt.Errorf("renderpass: service not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sequence := opts.Sequence
	if sequence == nil {
		sequence = sidenote.NewSession()
	}

	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"operation":  "renderpass.process",
		"session_id": sequenceID(sequence),
	})

	material := content
	if s.bracketEnabled || opts.EnableBracketSyntax {
		material = s.bracketPreprocessor().Process(material)
	}

	transformed, parsed, err := s.parser.Extract(material)
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("renderpass.parse_failed")
		return "", wrapParseError(err)
	}
	if len(parsed) == 0 {
		return transformed, nil
	}

	renderCtx := interfaces.RenderContext{
		Context:   ctx,
		Sequence:  sequence,
		Sanitizer: s.defaultSanitizer,
		RawInner:  s.rawInner || opts.RawInner,
	}

	output := transformed
	for idx, d := range parsed {
		start := time.Now()
		rendered, err := s.renderer.Render(renderCtx, d.Name, d.Params, d.Inner)
		elapsed := time.Since(start)
		s.metrics.ObserveRenderDuration(d.Name, elapsed)

		entryFields := map[string]any{
			"directive":   d.Name,
			"index":       idx,
			"duration_ms": elapsed.Milliseconds(),
		}
		if err != nil {
			s.metrics.IncrementRenderError(d.Name)
			entryFields["error"] = err
			logging.WithFields(logger, entryFields).Error("renderpass.render_failed")
			return "", wrapRenderError(err)
		}
		logging.WithFields(logger, entryFields).Debug("renderpass.render_succeeded")

		// One splice per placeholder; author prose may legally contain the
		// literal marker text.
		output = strings.Replace(output, parserpkg.Placeholder(idx), string(rendered), 1)
	}

	logging.WithFields(logger, map[string]any{
		"directives": len(parsed),
		"notes":      sequence.Count(),
	}).Debug("renderpass.process_completed")
	return output, nil
}

// RenderDocument processes the document's directives and converts the result
// to HTML, storing it on doc.BodyHTML. Markdown conversion uses the parser's
// configured defaults unless opts.Parser carries per-call overrides.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ProcessOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("renderpass: document is nil")
	}

	body, err := s.Process(ctx, string(doc.Body), opts)
	if err != nil {
		return nil, err
	}

	var html []byte
	if hasParserOverrides(opts.Parser) {
		html, err = s.markdownParser.ParseWithOptions([]byte(body), opts.Parser)
	} else {
		html, err = s.markdownParser.Parse([]byte(body))
	}
	if err != nil {
		return nil, wrapRenderError(err)
	}

	doc.BodyHTML = html
	return html, nil
}

// Load reads a single Markdown file, splits its frontmatter, and builds a
// Document ready for RenderDocument. Directory discovery is deliberately out
// of scope; hosts own their own content walking.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapLoadError(err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapLoadError(err)
	}

	doc, err := markdown.BuildDocument(path, source, info.ModTime())
	if err != nil {
		return nil, wrapLoadError(err)
	}

	logging.WithRenderContext(s.logger, "", "", path).Debug("renderpass.document_loaded")
	return doc, nil
}

// Registry exposes the underlying directive registry.
func (s *Service) Registry() interfaces.DirectiveRegistry {
	return s.registry
}

// bracketPreprocessor builds a preprocessor scoped to the registered
// directive names so bracket rewriting never touches Markdown link labels.
func (s *Service) bracketPreprocessor() *parserpkg.BracketPreprocessor {
	names := []string{}
	if s.registry != nil {
		for _, def := range s.registry.List() {
			names = append(names, def.Name)
		}
	}
	return parserpkg.NewBracketPreprocessor(names...)
}

// hasParserOverrides reports whether the per-call parse options differ from
// the zero value. A zero Parser means the markdown parser's configured
// defaults apply.
func hasParserOverrides(opts interfaces.ParseOptions) bool {
	return len(opts.Extensions) > 0 || opts.HardWraps || opts.SafeMode
}

func sequenceID(sequence interfaces.NoteSequence) string {
	if session, ok := sequence.(*sidenote.Session); ok {
		return session.ID()
	}
	return ""
}

// Ensure Service complies with interfaces.RenderPassService.
var _ interfaces.RenderPassService = (*Service)(nil)
