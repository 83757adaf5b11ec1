package optics

import (
	"io"
	"log/slog"
	"time"
)

// Options configures an Engine.
type Options struct {
	// Logger receives run diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// LogInterval is the minimum time between two progress log records.
	LogInterval time.Duration

	// Progress, if set, is called after every appended entry.
	Progress func(processed, total int)
}

// DefaultOptions contains the default engine options.
var DefaultOptions = Options{
	Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	LogInterval: time.Second,
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) func(o *Options) {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLogInterval sets the minimum time between progress log records.
func WithLogInterval(d time.Duration) func(o *Options) {
	return func(o *Options) {
		o.LogInterval = d
	}
}

// WithProgress sets a progress callback.
func WithProgress(fn func(processed, total int)) func(o *Options) {
	return func(o *Options) {
		o.Progress = fn
	}
}
