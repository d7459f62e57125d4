package logging

import (
	"log/slog"
	"os"
)

// New returns a JSON logger. Dev environments get debug level so the
// orchestrator's transition logs show up locally.
func New(appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
