package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns the service-wide JSON logger. Every record carries the
// service name so the api, migrate and seed entrypoints stay separable in
// aggregated output. The level comes from LOG_LEVEL and defaults to info.
func New(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
