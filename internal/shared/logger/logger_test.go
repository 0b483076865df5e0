package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name             string
		level            slog.Level
		showSourceLevels []slog.Level
		wantSource       bool
	}{
		{"info hidden", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn shown", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error shown", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info shown in debug mode", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			l := slog.New(NewConditionalSourceHandler(base, tt.showSourceLevels...))

			l.Log(context.Background(), tt.level, "allocated", "codigo", "BID-PRU-EST-3-TEL-OTR-001")

			out := buf.String()
			assert.Contains(t, out, "codigo=BID-PRU-EST-3-TEL-OTR-001")
			assert.Equal(t, tt.wantSource, strings.Contains(out, "source="))
		})
	}
}

func TestConditionalSourceHandler_WithAttrsKeepsLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	l := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).With("component", "allocator")

	l.Error("boom")

	assert.Contains(t, buf.String(), "component=allocator")
	assert.Contains(t, buf.String(), "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFromContext(t *testing.T) {
	fallback := Nop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := Nop().With("request_id", "abc")
	ctx := IntoContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
