// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvLogLevel overrides the configured level when set
const EnvLogLevel = "LOG_LEVEL"

// Numeric levels as accepted in config and LOG_LEVEL
const (
	LevelOff = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// SlogTrace sits below debug for very chatty output
const SlogTrace = slog.LevelDebug - 4

// ParseLevel maps a numeric level to slog. ok is false for LevelOff.
func ParseLevel(level int) (slog.Level, bool) {
	switch {
	case level <= LevelOff:
		return 0, false
	case level == LevelError:
		return slog.LevelError, true
	case level == LevelWarn:
		return slog.LevelWarn, true
	case level == LevelInfo:
		return slog.LevelInfo, true
	case level == LevelDebug:
		return slog.LevelDebug, true
	default:
		return SlogTrace, true
	}
}

// LevelFromEnv returns LOG_LEVEL when it holds a valid number, else fallback
func LevelFromEnv(fallback int) int {
	raw := strings.TrimSpace(os.Getenv(EnvLogLevel))
	if raw == "" {
		return fallback
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < LevelOff || level > LevelTrace {
		return fallback
	}
	return level
}

// Setup installs the default logger writing to stderr and, when file is set,
// appending to file as well. The returned closer releases the file.
func Setup(level int, file string) (io.Closer, error) {
	slogLevel, enabled := ParseLevel(level)
	if !enabled {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nopCloser{}, nil
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closer = f
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
