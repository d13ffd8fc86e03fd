// SPDX-License-Identifier: MIT

// Package logger is the structured logging front-end shared by the numeric
// engine and the lvla service layer. It wraps log/slog behind a small
// interface so iterative algorithms can report soft failures (for example a
// Jacobi sweep that ran out of iterations) without depending on a concrete
// handler, and so tests can capture or silence those records.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging contract consumed across lvla.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithGroup(name string) Logger
}

// Supported output formats for New.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatText   = "text"
)

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

// FromHandler builds a Logger over an arbitrary slog.Handler.
func FromHandler(h slog.Handler) Logger {
	return &SlogLogger{l: slog.New(h)}
}

// New builds a Logger writing to w in the requested format at the given level.
// Unknown formats fall back to text.
func New(w io.Writer, format string, level slog.Level) Logger {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case FormatJSON:
		return FromHandler(slog.NewJSONHandler(w, opts))
	case FormatPretty:
		return FromHandler(NewPrettyHandler(w, opts))
	default:
		return FromHandler(slog.NewTextHandler(w, opts))
	}
}

// Default returns a text logger on stderr at warn level, so library callers
// only see records that signal a degraded numeric result.
func Default() Logger {
	return New(os.Stderr, FormatText, slog.LevelWarn)
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return FromHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel converts a level name to slog.Level; unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

type ctxKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the Logger stored in ctx, or Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return Default()
}

func (s *SlogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *SlogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *SlogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *SlogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

func (s *SlogLogger) WithGroup(name string) Logger {
	return &SlogLogger{l: s.l.WithGroup(name)}
}
