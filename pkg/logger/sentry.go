package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// MinLevel is the lowest level forwarded to Sentry as a log entry.
	// Anything below warn is raised to warn.
	MinLevel slog.Level
}

// NewWithSentry creates a logger writing to the configured output and to
// Sentry. Errors become Sentry issues; records at MinLevel and above are kept
// as Sentry logs. With an empty DSN, or when the client cannot be
// initialized, only the output is used.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	o := buildOptions(opts...)
	out := o.handler()
	local := slog.New(NewContextHandler(out, o.extractors...))

	if cfg.DSN == "" {
		return local
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	})
	if err != nil {
		local.Error("sentry disabled", slog.Any("error", err))
		return local
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{out, remote}, o.extractors...))
}

func sentryLogLevels(minLevel slog.Level) []slog.Level {
	minLevel = max(minLevel, slog.LevelWarn)
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelWarn, slog.LevelError} {
		if l >= minLevel {
			levels = append(levels, l)
		}
	}
	return levels
}
