package kdtree

import (
	"io"
	"log/slog"
)

// Options configures tree construction.
type Options struct {
	// Logger receives build diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultOptions contains the default tree options.
var DefaultOptions = Options{
	Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
}

// WithLogger sets the build logger.
func WithLogger(l *slog.Logger) func(o *Options) {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
