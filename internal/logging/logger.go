package logging

import (
	"log/slog"
	"os"
)

// Level picks the global log level: debug everywhere except production.
func Level(production bool) slog.Level {
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(production bool) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(production),
	})
	slog.SetDefault(slog.New(handler))
}
