// Package logger writes structured JSON logs.  Every entry carries the
// service name, hostname and an action label so that log lines from the
// HTTP server, the event consumer and the CLI can be told apart.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	handler *slog.Logger
}

// New returns a logger writing JSON to stdout at the given level
// (debug, info, warn, error; default info).
func New(service, level string) *Logger {
	return NewWithWriter(os.Stdout, service, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, service, level string) *Logger {
	hostname, _ := os.Hostname()
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		handler: slog.New(h).With(
			slog.String("service", service),
			slog.String("hostname", hostname),
		),
	}
}

// Nop discards everything.  Useful in tests.
func Nop() *Logger { return NewWithWriter(io.Discard, "nop", "error") }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (l *Logger) Debug(action, message string, args ...any) {
	l.log(slog.LevelDebug, action, message, args...)
}

func (l *Logger) Info(action, message string, args ...any) {
	l.log(slog.LevelInfo, action, message, args...)
}

func (l *Logger) Warn(action, message string, args ...any) {
	l.log(slog.LevelWarn, action, message, args...)
}

// Error logs err under the "error" key.  A nil err is allowed.
func (l *Logger) Error(action, message string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.log(slog.LevelError, action, message, args...)
}

// Slog exposes the underlying logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger { return l.handler }

func (l *Logger) log(level slog.Level, action, message string, args ...any) {
	if l == nil {
		return
	}
	args = append([]any{slog.String("action", action)}, args...)
	l.handler.Log(context.Background(), level, message, args...)
}
