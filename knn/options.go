package knn

// Options configures a LinearScan.
type Options struct {
	// Parallelism is the number of goroutines a bulk query may use. Values
	// below 2 scan on the calling goroutine.
	Parallelism int

	// MinChunk is the smallest id range handed to a single worker.
	MinChunk int
}

// DefaultOptions contains the default linear scan options.
var DefaultOptions = Options{
	Parallelism: 1,
	MinChunk:    1024,
}

// WithParallelism sets the number of goroutines used by bulk queries.
func WithParallelism(n int) func(o *Options) {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithMinChunk sets the smallest id range per bulk worker.
func WithMinChunk(n int) func(o *Options) {
	return func(o *Options) {
		o.MinChunk = n
	}
}
