package platform

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is the abstraction the renderer core depends on, kept in the
// teacher's shape (a single Printf-style method) so core packages never
// import log/slog directly.
type Logger interface {
	Printf(format string, args ...interface{})
}

// slogLogger adapts a *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewLogger builds the default structured logger: a text handler writing to
// stdout at the level named by cfg.LogLevel.
func NewLogger(cfg *Config) Logger {
	level := parseLevel(cfg.LogLevel)
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(handler)}
}

func (s *slogLogger) Printf(format string, args ...interface{}) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func parseLevel(name string) slog.Level {
	switch name {
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
