package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithExtractors(logger.ValueExtractor(ctxKey{}, "request_id"), nil),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc-123")
		log.InfoContext(ctx, "hello", slog.Int("status", 200))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "abc-123", rec["request_id"])
		assert.EqualValues(t, 200, rec["status"])
	})

	t.Run("missing context value is skipped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(logger.ValueExtractor(ctxKey{}, "request_id")))

		log.InfoContext(context.Background(), "hello")
		assert.NotContains(t, buf.String(), "request_id")
	})

	t.Run("text format and level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat("TEXT"),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("dropped")
		log.Warn("kept")

		out := buf.String()
		assert.NotContains(t, out, "dropped")
		assert.Contains(t, out, "msg=kept")
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(logger.ValueExtractor(ctxKey{}, "request_id"))).
			With("component", "web").
			WithGroup("g")

		ctx := context.WithValue(context.Background(), ctxKey{}, "r1")
		log.InfoContext(ctx, "x")
		assert.Contains(t, buf.String(), `"component":"web"`)
		assert.Contains(t, buf.String(), "r1")
	})
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{}, logger.WithOutput(&buf))
	log.Error("boom")
	assert.True(t, strings.Contains(buf.String(), "boom"))
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewContextHandler(t *testing.T) {
	t.Parallel()

	t.Run("no extractors returns inner handler", func(t *testing.T) {
		t.Parallel()
		inner := slog.NewTextHandler(&bytes.Buffer{}, nil)
		assert.Same(t, inner, logger.NewContextHandler(inner, nil, nil))
	})

	t.Run("adds every extracted attribute", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		static := func(context.Context) (slog.Attr, bool) { return slog.String("region", "eu"), true }
		log := slog.New(logger.NewContextHandler(
			slog.NewJSONHandler(&buf, nil),
			logger.ValueExtractor(ctxKey{}, "request_id"),
			static,
		))

		log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "r9"), "x")
		assert.Contains(t, buf.String(), `"request_id":"r9"`)
		assert.Contains(t, buf.String(), `"region":"eu"`)
	})
}

func TestNopeIsDisabled(t *testing.T) {
	t.Parallel()
	assert.False(t, logger.NewNope().Enabled(context.Background(), slog.LevelError))
}
