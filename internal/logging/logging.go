package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"datebot/internal/config"
)

// Cleanup closes whatever New opened.
type Cleanup func() error

// New builds the process logger. Records go to out (stdout when nil) and,
// when cfg.File is set, are appended to that file as well.
func New(cfg config.LoggingConfig, out io.Writer) (*slog.Logger, Cleanup, error) {
	if out == nil {
		out = os.Stdout
	}
	handlerOptions := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: true,
	}

	writers := []io.Writer{out}
	var file *os.File
	if cfg.File != "" {
		dir := filepath.Dir(cfg.File)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		writers = append(writers, file)
	}

	multi := io.MultiWriter(writers...)
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(multi, handlerOptions)
	default:
		handler = slog.NewTextHandler(multi, handlerOptions)
	}

	cleanup := func() error {
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return slog.New(handler), cleanup, nil
}

// Discard returns a logger that drops everything; used by tests and quiet CLIs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(value string) slog.Level {
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
