package simcache

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with simcache-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID tags subsequent log lines with a build/load correlation id.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogBuildStart logs the start of Build.
func (l *Logger) LogBuildStart(ctx context.Context, n, concurrency int) {
	l.InfoContext(ctx, "build started",
		"n", n,
		"concurrency", concurrency,
	)
}

// LogBuildProgress logs a throttled progress update during Build.
func (l *Logger) LogBuildProgress(ctx context.Context, done, total int) {
	l.DebugContext(ctx, "build progress",
		"done", done,
		"total", total,
	)
}

// LogBuildComplete logs the completion of Build, successful or not.
func (l *Logger) LogBuildComplete(ctx context.Context, n, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"n", n,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"n", n,
			"bytes", bytes,
		)
	}
}

// LogSave logs a Save operation.
func (l *Logger) LogSave(path string, err error) {
	if err != nil {
		l.Error("save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("save completed",
			"path", path,
		)
	}
}

// LogLoad logs a Load operation.
func (l *Logger) LogLoad(path string, rows, bytes int, err error) {
	if err != nil {
		l.Error("load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("load completed",
			"path", path,
			"rows", rows,
			"bytes", bytes,
		)
	}
}
