package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger output, populated from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// New builds a slog.Logger from the config. Context extractors add
// request-scoped attributes (org id, request id) to every record.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithOutput(cfg, os.Stdout, extractors...)
}

// NewWithOutput is New with a custom output destination, mainly for tests.
func NewWithOutput(cfg Config, out io.Writer, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	if len(extractors) > 0 {
		handler = newContextHandler(handler, extractors...)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}
