package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	logger  = newLogger(os.Stdout, false)
	slogMap = map[Level]slog.Level{
		LevelDebug: slog.LevelDebug,
		LevelInfo:  slog.LevelInfo,
		LevelWarn:  slog.LevelWarn,
		LevelError: slog.LevelError,
	}
)

func newLogger(w io.Writer, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetLevel changes the minimum level for all subsequent log calls
func SetLevel(l Level) {
	level.Set(slogMap[l])
}

// ParseLevel maps "debug", "info", "warn" and "error" onto a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutput swaps the destination and format. JSON is used in production.
func SetOutput(w io.Writer, jsonOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, jsonOutput)
}

// Logger exposes the underlying slog logger for libraries that take one
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a child logger carrying attrs
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

func Debugf(format string, args ...any) { Logger().Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Logger().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Logger().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Logger().Error(fmt.Sprintf(format, args...)) }

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	Logger().Log(context.Background(), slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}
