package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ValueExtractor returns an extractor logging the non-empty string stored
// in the context under key as attribute name.
func ValueExtractor(key any, name string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := ctx.Value(key).(string); ok && s != "" {
			return slog.String(name, s), true
		}
		return slog.Attr{}, false
	}
}

// contextHandler adds attributes taken from the record's context.
type contextHandler struct {
	inner      slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps inner so that every record is enriched with the
// attributes the extractors find in the logging context. Extractors run on
// each call; nil extractors are ignored. Without extractors inner is
// returned as is.
func NewContextHandler(inner slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var kept []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return inner
	}
	return &contextHandler{inner: inner, extractors: kept}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		attrs := make([]slog.Attr, 0, len(h.extractors))
		for _, ex := range h.extractors {
			if a, ok := ex(ctx); ok {
				attrs = append(attrs, a)
			}
		}
		rec.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name), extractors: h.extractors}
}
