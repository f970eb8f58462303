package log

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error"} {
		level, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, Level(name), level)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestToSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ToSlogLevel(Debug))
	require.Equal(t, slog.LevelInfo, ToSlogLevel(Info))
	require.Equal(t, slog.LevelWarn, ToSlogLevel(Warn))
	require.Equal(t, slog.LevelError, ToSlogLevel(Error))
	require.Equal(t, slog.LevelError, ToSlogLevel("bogus"))
}

func TestMustCreateLogger_File(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logPath := filepath.Join(t.TempDir(), "report.log")
	closer := MustCreateLogger(context.Background(), logPath, Info, "", "test")

	slog.Info("Resolved player", slog.String("puuid", "P1"))
	slog.Debug("Not written below info")
	slog.Warn("Failed to fetch match", ErrAttr(errors.New("boom")))
	closer()

	body, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(body), "Resolved player")
	require.Contains(t, string(body), "boom")
	require.NotContains(t, string(body), "Not written below info")
}
