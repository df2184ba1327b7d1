package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Option configures a logger created by New or NewWithSentry.
type Option func(*options)

type options struct {
	output     io.Writer
	format     string
	extractors []ContextExtractor
	level      slog.Level
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithFormat selects FormatJSON (default) or FormatText.
// Unknown formats fall back to JSON.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

// WithOutput sets the destination. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

func buildOptions(opts ...Option) *options {
	o := &options{output: os.Stdout, format: FormatJSON, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.format == FormatText {
		return slog.NewTextHandler(o.output, ho)
	}
	return slog.NewJSONHandler(o.output, ho)
}

// New creates a structured logger. Without options it writes JSON at info
// level to stdout.
//
// Example:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
func New(opts ...Option) *slog.Logger {
	o := buildOptions(opts...)
	return slog.New(NewContextHandler(o.handler(), o.extractors...))
}

// ParseLevel converts "debug", "info", "warn"/"warning" or "error" to a
// slog.Level. An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
}
