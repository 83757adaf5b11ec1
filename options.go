package vecscan

import (
	"fmt"
	"log/slog"
	"time"
)

// Engine selects the k-NN engine behind an Explorer.
type Engine int

const (
	// EngineAuto uses the spatial index when the objects are dense vectors
	// and the distance has a box bound, and the linear scan otherwise.
	EngineAuto Engine = iota
	// EngineLinear always uses the linear scan.
	EngineLinear
	// EngineTree always uses the spatial index.
	EngineTree
)

func (e Engine) String() string {
	switch e {
	case EngineAuto:
		return "auto"
	case EngineLinear:
		return "linear"
	case EngineTree:
		return "kdtree"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

type options struct {
	engine           Engine
	parallelism      int
	metricsCollector MetricsCollector
	logger           *Logger
	logInterval      time.Duration
	progress         func(processed, total int)
}

// Option configures an Explorer.
type Option func(*options)

// WithEngine selects the k-NN engine. The default is EngineAuto.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithParallelism sets the number of workers used by bulk queries.
// Values below 1 mean sequential execution.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecscan.BasicMetricsCollector{}
//	ex, _ := vecscan.New(rel, distance.Euclidean{}, vecscan.WithMetricsCollector(metrics))
//	// ... use ex ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
//	logger := vecscan.NewJSONLogger(slog.LevelInfo)
//	ex, _ := vecscan.New(rel, dist, vecscan.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgress registers a callback invoked after each element appended to
// an OPTICS cluster order.
func WithProgress(fn func(processed, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressLogInterval sets the minimum interval between OPTICS progress
// log records.
func WithProgressLogInterval(d time.Duration) Option {
	return func(o *options) {
		o.logInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		engine:           EngineAuto,
		parallelism:      1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		logInterval:      time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
