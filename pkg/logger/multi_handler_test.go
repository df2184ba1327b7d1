package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestFanout(t *testing.T) {
	t.Parallel()

	t.Run("delivers by level", func(t *testing.T) {
		t.Parallel()
		var debug, warn bytes.Buffer
		log := slog.New(fanout{
			slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
			slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		}).With("k", "v")

		log.Info("info")
		log.Warn("warn")

		assert.Contains(t, debug.String(), "msg=info")
		assert.Contains(t, debug.String(), "msg=warn")
		assert.NotContains(t, warn.String(), "msg=info")
		assert.Contains(t, warn.String(), "k=v")
	})

	t.Run("keeps delivering after a failure", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		boom := errors.New("boom")
		h := fanout{
			failingHandler{Handler: slog.NewTextHandler(&buf, nil), err: boom},
			slog.NewTextHandler(&buf, nil),
		}

		err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "msg", 0))
		require.ErrorIs(t, err, boom)
		assert.Contains(t, buf.String(), "msg=msg")
	})
}
