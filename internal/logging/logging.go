// Package logging builds the collector's slog logger: text lines to stdout
// and to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/quantgrid/nse-chain-data/internal/config"
)

// New creates a logger writing to stdout and the configured rotating file.
func New(cfg config.LogConfig) *slog.Logger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	out := io.MultiWriter(os.Stdout, rotator)
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
