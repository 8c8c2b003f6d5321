package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/livefeed/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for local runs.
	FormatText Format = "text"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`  // Env selects development, staging or production defaults.
	Service string `env:"SERVICE_NAME" envDefault:"livefeed"` // Service is attached to every record.
	Level   string `env:"LOG_LEVEL"`                         // Level overrides the environment default (debug, info, warn, error).
}

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats: misconfiguration should prevent startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

func WithTextFormatter() Option {
	return func(c *config) { c.format = FormatText }
}

func WithJSONFormatter() Option {
	return func(c *config) { c.format = FormatJSON }
}

// WithOutput sets custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes from context.
// Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithEnvironment applies the defaults of the named environment and tags every
// record with the service and environment names. Development uses debug level
// and text output; staging and production use info level and JSON.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		name := environment.Normalize(env)
		switch name {
		case environment.Production, environment.Staging:
			c.level = slog.LevelInfo
			c.format = FormatJSON
		default:
			c.level = slog.LevelDebug
			c.format = FormatText
		}
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", string(name)))
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// defaultConfig: JSON at INFO level on stdout.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger whose handler is wrapped with
// LogHandlerDecorator so registered extractors run on every record.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// NewFromConfig creates a logger from Config. Options passed explicitly are
// applied last and win over the config.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := []Option{WithEnvironment(cfg.Env, cfg.Service)}
	if cfg.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
			panic(fmt.Errorf("invalid log level %q: %w", cfg.Level, err))
		}
		configOpts = append(configOpts, WithLevel(level))
	}
	return New(append(configOpts, opts...)...)
}
