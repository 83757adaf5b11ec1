// Package prommetrics exports vecscan operation metrics to Prometheus.
//
//	collector := prommetrics.New()
//	prometheus.MustRegister(collector)
//	ex, err := vecscan.New(rel, dist, vecscan.WithMetricsCollector(collector))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/vecscan"
)

var (
	_ vecscan.MetricsCollector = (*Collector)(nil)
	_ prometheus.Collector     = (*Collector)(nil)
)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name.
	Namespace string

	// Buckets of the latency histogram in seconds.
	Buckets []float64

	// ConstLabels are attached to every metric.
	ConstLabels prometheus.Labels
}

// DefaultOptions contains the default collector options.
var DefaultOptions = Options{
	Namespace: "vecscan",
	Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
}

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) func(o *Options) {
	return func(o *Options) {
		o.Namespace = ns
	}
}

// WithBuckets sets the latency histogram buckets.
func WithBuckets(buckets []float64) func(o *Options) {
	return func(o *Options) {
		o.Buckets = buckets
	}
}

// WithConstLabels attaches constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) func(o *Options) {
	return func(o *Options) {
		o.ConstLabels = labels
	}
}

// Collector implements vecscan.MetricsCollector with Prometheus metrics.
// Register it with a prometheus.Registerer to expose them.
type Collector struct {
	builds       *prometheus.CounterVec
	relationSize prometheus.Gauge
	latency      *prometheus.HistogramVec
	queries      *prometheus.CounterVec
	rangeResults prometheus.Histogram
	orderSize    prometheus.Gauge
}

// New creates a Collector.
func New(optFns ...func(o *Options)) *Collector {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Collector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "builds_total",
			Help:        "Query engine constructions by engine and status.",
			ConstLabels: opts.ConstLabels,
		}, []string{"engine", "status"}),
		relationSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "relation_size",
			Help:        "Number of elements of the most recently built relation.",
			ConstLabels: opts.ConstLabels,
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "operation_duration_seconds",
			Help:        "Latency of query operations.",
			Buckets:     opts.Buckets,
			ConstLabels: opts.ConstLabels,
		}, []string{"op", "status"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "queries_total",
			Help:        "Answered k-NN queries; bulk calls count every query.",
			ConstLabels: opts.ConstLabels,
		}, []string{"op"}),
		rangeResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "range_results",
			Help:        "Number of results per range query.",
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
			ConstLabels: opts.ConstLabels,
		}),
		orderSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "optics_order_size",
			Help:        "Length of the most recent OPTICS cluster order.",
			ConstLabels: opts.ConstLabels,
		}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements vecscan.MetricsCollector.
func (c *Collector) RecordBuild(engine vecscan.Engine, size int, duration time.Duration, err error) {
	c.builds.WithLabelValues(engine.String(), status(err)).Inc()
	c.latency.WithLabelValues("build", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.relationSize.Set(float64(size))
	}
}

// RecordSearch implements vecscan.MetricsCollector.
func (c *Collector) RecordSearch(_ int, duration time.Duration, err error) {
	c.latency.WithLabelValues("knn", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.queries.WithLabelValues("knn").Inc()
	}
}

// RecordBulkSearch implements vecscan.MetricsCollector.
func (c *Collector) RecordBulkSearch(queries, _ int, duration time.Duration, err error) {
	c.latency.WithLabelValues("bulk_knn", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.queries.WithLabelValues("bulk_knn").Add(float64(queries))
	}
}

// RecordRange implements vecscan.MetricsCollector.
func (c *Collector) RecordRange(results int, duration time.Duration, err error) {
	c.latency.WithLabelValues("range", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.rangeResults.Observe(float64(results))
	}
}

// RecordOPTICS implements vecscan.MetricsCollector.
func (c *Collector) RecordOPTICS(size int, duration time.Duration, err error) {
	c.latency.WithLabelValues("optics", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.orderSize.Set(float64(size))
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.builds.Describe(ch)
	c.relationSize.Describe(ch)
	c.latency.Describe(ch)
	c.queries.Describe(ch)
	c.rangeResults.Describe(ch)
	c.orderSize.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.builds.Collect(ch)
	c.relationSize.Collect(ch)
	c.latency.Collect(ch)
	c.queries.Collect(ch)
	c.rangeResults.Collect(ch)
	c.orderSize.Collect(ch)
}
