package vecscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// prommetrics package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called once after the query engine was constructed.
	RecordBuild(engine Engine, size int, duration time.Duration, err error)

	// RecordSearch is called after each k-NN query.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordBulkSearch is called after each bulk k-NN query.
	RecordBulkSearch(queries, k int, duration time.Duration, err error)

	// RecordRange is called after each range query with the number of results.
	RecordRange(results int, duration time.Duration, err error)

	// RecordOPTICS is called after each cluster ordering.
	RecordOPTICS(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(Engine, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordBulkSearch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRange(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordOPTICS(int, time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	SearchCount       atomic.Int64
	SearchErrors      atomic.Int64
	SearchTotalNanos  atomic.Int64
	BulkSearchCount   atomic.Int64
	BulkSearchQueries atomic.Int64
	BulkSearchErrors  atomic.Int64
	RangeCount        atomic.Int64
	RangeResults      atomic.Int64
	RangeErrors       atomic.Int64
	OPTICSCount       atomic.Int64
	OPTICSErrors      atomic.Int64
	OPTICSTotalNanos  atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ Engine, _ int, _ time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordBulkSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkSearch(queries, _ int, _ time.Duration, err error) {
	b.BulkSearchCount.Add(1)
	b.BulkSearchQueries.Add(int64(queries))
	if err != nil {
		b.BulkSearchErrors.Add(1)
	}
}

// RecordRange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRange(results int, _ time.Duration, err error) {
	b.RangeCount.Add(1)
	b.RangeResults.Add(int64(results))
	if err != nil {
		b.RangeErrors.Add(1)
	}
}

// RecordOPTICS implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOPTICS(_ int, duration time.Duration, err error) {
	b.OPTICSCount.Add(1)
	b.OPTICSTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OPTICSErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		SearchCount:       b.SearchCount.Load(),
		SearchErrors:      b.SearchErrors.Load(),
		SearchAvgNanos:    avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		BulkSearchCount:   b.BulkSearchCount.Load(),
		BulkSearchQueries: b.BulkSearchQueries.Load(),
		BulkSearchErrors:  b.BulkSearchErrors.Load(),
		RangeCount:        b.RangeCount.Load(),
		RangeResults:      b.RangeResults.Load(),
		RangeErrors:       b.RangeErrors.Load(),
		OPTICSCount:       b.OPTICSCount.Load(),
		OPTICSErrors:      b.OPTICSErrors.Load(),
		OPTICSAvgNanos:    avg(b.OPTICSTotalNanos.Load(), b.OPTICSCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	SearchCount       int64
	SearchErrors      int64
	SearchAvgNanos    int64
	BulkSearchCount   int64
	BulkSearchQueries int64
	BulkSearchErrors  int64
	RangeCount        int64
	RangeResults      int64
	RangeErrors       int64
	OPTICSCount       int64
	OPTICSErrors      int64
	OPTICSAvgNanos    int64
}
