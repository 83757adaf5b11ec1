package vecscan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vecscan-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (neighbor count) field to the logger.
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

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs the construction of a query engine.
func (l *Logger) LogBuild(ctx context.Context, engine Engine, size int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"engine", engine.String(),
			"size", size,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "engine ready",
		"engine", engine.String(),
		"size", size,
		"duration", duration,
	)
}

// LogSearch logs a k-NN query.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	log := l.WithK(k)
	if err != nil {
		log.ErrorContext(ctx, "search failed", "error", err)
		return
	}
	log.DebugContext(ctx, "search completed", "results", resultsFound)
}

// LogBulkSearch logs a bulk k-NN query. The count field holds the number of queries.
func (l *Logger) LogBulkSearch(ctx context.Context, queries, k int, err error) {
	log := l.WithK(k).WithCount(queries)
	if err != nil {
		log.ErrorContext(ctx, "bulk search failed", "error", err)
		return
	}
	log.DebugContext(ctx, "bulk search completed")
}

// LogRange logs a range query.
func (l *Logger) LogRange(ctx context.Context, eps float64, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "range query failed",
			"eps", eps,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "range query completed",
			"eps", eps,
			"results", resultsFound,
		)
	}
}

// LogOPTICS logs a completed cluster ordering.
func (l *Logger) LogOPTICS(ctx context.Context, eps float64, minPts, size int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "optics failed",
			"eps", eps,
			"min_pts", minPts,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "optics completed",
			"eps", eps,
			"min_pts", minPts,
			"size", size,
			"duration", duration,
		)
	}
}
