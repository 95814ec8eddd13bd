package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global JSON logger writing to stdout at Level().
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(),
	})
	slog.SetDefault(slog.New(handler))
}

// Level reads the minimum log level from LOG_LEVEL (debug, info, warn,
// error). Unset or unrecognized values mean info.
func Level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
