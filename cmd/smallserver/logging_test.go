package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " WARN ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "info", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestSetupLogging_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()

	for _, env := range []string{"dev", "prod"} {
		t.Run(env, func(t *testing.T) {
			setupLogging(env, "warn")
			assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
			assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))

			setupLogging(env, "")
			assert.False(t, slog.Default().Enabled(ctx, slog.LevelDebug))
			assert.True(t, slog.Default().Enabled(ctx, slog.LevelInfo))
		})
	}
}
