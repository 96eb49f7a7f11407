// Package obs holds the process-wide structured logger.
package obs

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger shared by all packages. It writes to the
// default slog handler until InitLogger is called.
var Logger = slog.Default()

// InitLogger switches Logger to a JSON handler on stdout at the given level
// ("debug", "info", "warn", "error"; anything else means info).
func InitLogger(level string) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	Logger = slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
