package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

// L returns the process logger, or slog's default before Init ran
// (tests exercise packages without the full startup path).
func L() *slog.Logger {
	if Log == nil {
		return slog.Default()
	}
	return Log
}

func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
	Log = slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
