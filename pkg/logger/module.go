package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alex-galey/pages-janitor/pkg/config"
	"go.uber.org/fx"
)

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewSlogLogger(cfg *config.JanitorConfig) *slog.Logger {
	return newSlogLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

func newSlogLogger(w io.Writer, level, format string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

var Module = fx.Module("logger",
	fx.Provide(NewSlogLogger),
)
