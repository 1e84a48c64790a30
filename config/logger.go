package config

import (
	"io"
	"log/slog"
	"strings"
)

func LogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger installs a JSON slog logger writing to w as the default logger.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	return logger
}
