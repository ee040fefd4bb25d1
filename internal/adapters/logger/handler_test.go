package logger_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/logger"
)

func newHandler(t *testing.T, buf *bytes.Buffer) *logger.PrettyHandler {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info",
			level:      slog.LevelInfo,
			msg:        "compiled application.js",
			goldenName: "handler_compiled",
		},
		{
			name:       "warn",
			level:      slog.LevelWarn,
			msg:        "application.js is stale",
			goldenName: "handler_stale",
		},
		{
			name:       "error",
			level:      slog.LevelError,
			msg:        "compile failed",
			goldenName: "handler_failed",
		},
		{
			name:       "debug is filtered",
			level:      slog.LevelDebug,
			msg:        "resolved jquery.js",
			goldenName: "handler_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(newHandler(t, buf)).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(slog.Handler) slog.Handler
		msg        string
		attrs      []any
		goldenName string
	}{
		{
			name:       "record attributes",
			setup:      func(h slog.Handler) slog.Handler { return h },
			msg:        "compiled",
			attrs:      []any{"asset", "application.js", "bytes", 46, "stale", false},
			goldenName: "handler_record_attrs",
		},
		{
			name: "asset group",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("asset")
			},
			msg:        "stored",
			attrs:      []any{"logical_path", "site.css", "digest", "da39a3ee"},
			goldenName: "handler_asset_group",
		},
		{
			name: "handler attributes before record attributes",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("root", "/app")})
			},
			msg:        "watching",
			attrs:      []any{slog.Group("paths", slog.Int("count", 2))},
			goldenName: "handler_watch_attrs",
		},
		{
			name: "group then handler attributes",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("build").WithAttrs([]slog.Attr{slog.Duration("took", 1500*time.Millisecond)})
			},
			msg:        "compiled",
			attrs:      []any{"units", 3},
			goldenName: "handler_build_group",
		},
		{
			name:       "empty group name is ignored",
			setup:      func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			msg:        "compiled",
			attrs:      []any{"asset", "users.js"},
			goldenName: "handler_empty_group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(tt.setup(newHandler(t, buf))).Info(tt.msg, tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		want         bool
	}{
		{name: "debug below info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelDebug, want: false},
		{name: "info at info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelInfo, want: true},
		{name: "warn below error", handlerLevel: slog.LevelError, recordLevel: slog.LevelWarn, want: false},
		{name: "error at error", handlerLevel: slog.LevelError, recordLevel: slog.LevelError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: tt.handlerLevel})
			assert.Equal(t, tt.want, h.Enabled(t.Context(), tt.recordLevel))
		})
	}
}

func TestPrettyHandler_WriteError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	h := logger.NewPrettyHandler(failingWriter{}, nil)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "compiled application.js", 0)
	require.ErrorIs(t, h.Handle(t.Context(), r), assert.AnError)
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
