package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestAdapterWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	UseZap(zap.New(core), slog.LevelInfo)
	t.Cleanup(func() { UseZap(zap.NewNop(), slog.LevelInfo) })

	l := NewSlogAdapter()
	l.Debug("hidden")
	l.Info("Token loaded", "symbol", "USDT", "decimals", 6)
	l.Warn("careful")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Token loaded", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "USDT", entries[0].ContextMap()["symbol"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestZapFallsBackToInstalledLogger(t *testing.T) {
	zl := zap.NewNop()
	UseZap(zl, slog.LevelInfo)
	assert.Same(t, zl, Zap())
}
