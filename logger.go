package colorquant

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with colorquant-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithIterations adds an iterations field to the logger.
func (l *Logger) WithIterations(iterations int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iterations", iterations),
	}
}

// LogQuantize logs a quantization run.
func (l *Logger) LogQuantize(ctx context.Context, points, iterations int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantize failed",
			"points", points,
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "quantize completed",
			"points", points,
			"iterations", iterations,
		)
	}
}

// LogBatchQuantize logs a batch quantization run.
func (l *Logger) LogBatchQuantize(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch quantize completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch quantize completed",
			"count", count,
		)
	}
}

// LogSave logs a codebook save.
func (l *Logger) LogSave(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "codebook save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "codebook saved",
			"name", name,
		)
	}
}

// LogLoad logs a codebook load.
func (l *Logger) LogLoad(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "codebook load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "codebook loaded",
			"name", name,
		)
	}
}
