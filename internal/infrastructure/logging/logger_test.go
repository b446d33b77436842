package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	for _, name := range []string{"zap", "zerolog"} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			dir := t.TempDir()

			logger := NewLogger(&LoggerConfig{
				AppName:  "huddle-test",
				FilePath: dir,
				FileName: "test.log",
				Encoding: "json",
				Level:    "info",
				Logger:   name,
			})

			logger.Info(RoomStore, Expiry, "room expired", map[ExtraKey]any{RoomID: "room-1"})
			logger.Debug(RoomStore, Expiry, "filtered out", nil)
			_ = logger.Sync()

			data, err := os.ReadFile(filepath.Join(dir, "test.log"))
			req.NoError(err)
			req.Contains(string(data), "room expired")
			req.Contains(string(data), "room-1")
			req.Contains(string(data), "RoomStore")
			req.NotContains(string(data), "filtered out")
		})
	}
}

func TestNewLogger_UnknownPanics(t *testing.T) {
	require.Panics(t, func() {
		NewLogger(&LoggerConfig{Logger: "logrus"})
	})
}

func TestNewNop(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Error(Internal, Startup, "ignored", map[ExtraKey]any{ErrorMessage: "boom"})
	})
}

func TestNewDefaultConfig(t *testing.T) {
	req := require.New(t)

	cfg := NewDefaultConfig("huddle-cli")
	req.Equal("huddle-cli", cfg.AppName)
	req.Equal("huddle-cli.log", cfg.FileName)

	t.Setenv("LOGGER_LOGGER", "zerolog")
	t.Setenv("LOGGER_LEVEL", "warn")
	t.Setenv("LOGGER_FILE_PATH", "/tmp/huddle-logs/")
	t.Setenv("LOGGER_CONSOLE", "false")

	cfg = NewDefaultConfig("huddle-cli")
	req.Equal("zerolog", cfg.Logger)
	req.Equal("warn", cfg.Level)
	req.Equal("/tmp/huddle-logs/", cfg.FilePath)
	req.False(cfg.Console)
}
