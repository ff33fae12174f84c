// Package logging wraps slog with operation-scoped helpers.
package logging

import (
	"context"
	"log/slog"
	"time"
)

// Logger provides structured logging for facade operations.
// The zero value and a nil *Logger discard everything.
type Logger struct {
	logger *slog.Logger
}

// New wraps an slog.Logger. A nil logger yields a no-op Logger.
func New(l *slog.Logger) *Logger {
	return &Logger{logger: l}
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(op Operation) *Logger {
	return l.With("op", string(op))
}

// Operation names a facade operation for logging.
type Operation string

// Facade operations.
const (
	OpReadDataset Operation = "read_dataset"
	OpSaveDataset Operation = "save_dataset"
	OpReadConfig  Operation = "read_config"
	OpSaveConfig  Operation = "save_config"
)

// LogOperation logs the outcome of an operation at debug level.
func LogOperation(ctx context.Context, logger *Logger, duration time.Duration, err error, fields ...any) {
	args := append([]any{"duration", duration}, fields...)
	if err != nil {
		logger.Debug(ctx, "operation failed", append(args, "error", err)...)
		return
	}
	logger.Debug(ctx, "operation completed", args...)
}
