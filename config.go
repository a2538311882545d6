package sidenote

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// LoggingProviderNoop disables logging; LoggingProviderGoLogger wires the
// go-logger backed provider.
const (
	LoggingProviderNoop     = "noop"
	LoggingProviderGoLogger = "gologger"
)

// Config drives how New assembles the directive registry, renderer, and
// render pass service.
type Config struct {
	Logging    LoggingConfig
	Markdown   MarkdownConfig
	Directives DirectivesConfig
}

// LoggingConfig selects and tunes the logging provider.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// MarkdownConfig carries the default Markdown parse options for render passes.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// DirectivesConfig controls which built-in directives are registered and how
// author text crosses the encoding boundary.
type DirectivesConfig struct {
	// BuiltIns names the built-in definitions to register. Empty registers
	// all of them.
	BuiltIns []string
	// BracketSyntax additionally recognises [name]...[/name] spellings.
	BracketSyntax bool
	// RawInner disables default HTML escaping of author text in favour of
	// sanitisation. Escaping is the default on purpose; opting out should be
	// a deliberate decision.
	RawInner bool
}

// DefaultConfig returns the configuration New uses when the zero value is not
// enough: escaped inner text, all built-ins, no logging.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: LoggingProviderNoop,
			Level:    "info",
			Format:   "json",
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify"},
		},
		Directives: DirectivesConfig{},
	}
}

// Validate checks the configuration before assembly.
func (c Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate ensures provider, level, and format carry supported values.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.By(oneOf("logging provider", "", LoggingProviderNoop, LoggingProviderGoLogger))),
		validation.Field(&c.Level, validation.By(oneOf("logging level", "", "trace", "debug", "info", "warn", "warning", "error", "fatal"))),
		validation.Field(&c.Format, validation.By(oneOf("logging format", "", "json", "console", "pretty"))),
	)
}

func oneOf(label string, allowed ...string) func(value any) error {
	return func(value any) error {
		str, ok := value.(string)
		if !ok {
			return validation.NewError("sidenote.config.type", fmt.Sprintf("%s must be a string", label))
		}
		normalized := strings.ToLower(strings.TrimSpace(str))
		for _, candidate := range allowed {
			if normalized == candidate {
				return nil
			}
		}
		return validation.NewError("sidenote.config.value", fmt.Sprintf("unsupported %s %q", label, str))
	}
}

func (c MarkdownConfig) parseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: c.Extensions,
		HardWraps:  c.HardWraps,
		SafeMode:   c.SafeMode,
	}
}
