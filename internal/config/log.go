package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel parses DEBUG, INFO, WARN or ERROR. An empty string means INFO.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(s) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}

// NewLogHandler creates a handler writing to w. The format is "text" (or empty) or "json".
func NewLogHandler(w io.Writer, level, format string) (slog.Handler, error) {
	logLevel, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// SetLogLevel sets the log level for the application from LOG_LEVEL, and the format from LOG_FORMAT.
func SetLogLevel() {
	handler, err := NewLogHandler(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		slog.Error("Invalid log configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(handler))
}
