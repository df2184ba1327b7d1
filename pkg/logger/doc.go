// Package logger builds log/slog loggers for tinyweb applications.
//
// New returns a JSON or text logger; NewWithSentry additionally ships errors
// and warnings to Sentry when a DSN is configured and degrades to the plain
// logger otherwise. NewNope discards everything and is the framework default.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(logger.ValueExtractor(requestIDKey{}, "request_id")),
//	)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// ParseLevel maps configuration strings ("debug", "info", "warn", "error")
// to levels.
//
// # Context attributes
//
// A ContextExtractor pulls one attribute out of the context passed to the
// *Context logging methods; it runs on every record, so request-scoped values
// stay current. NewContextHandler adds extractors to any slog.Handler:
//
//	h := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil), extractors...)
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		Release:     version,
//	})
//	defer sentry.Flush(2 * time.Second)
//
// Errors become Sentry issues. Records at SentryConfig.MinLevel and above
// (never below warn) are stored as Sentry logs. Local output is unaffected.
package logger
