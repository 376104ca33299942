package colorquant

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    quantizeCounter   prometheus.Counter
//	    quantizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuantize(points int, duration time.Duration, err error) {
//	    p.quantizeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordQuantize is called after each quantization run.
	// points is the number of input points, duration is the total time
	// taken, err is nil if successful.
	RecordQuantize(points int, duration time.Duration, err error)

	// RecordBatchQuantize is called after each batch quantization run.
	// count is the number of images attempted, failed is the number that
	// failed, duration is the total time taken.
	RecordBatchQuantize(count, failed int, duration time.Duration)

	// RecordSave is called after each codebook save.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each codebook load.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuantize(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordBatchQuantize(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)             {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QuantizeCount      atomic.Int64
	QuantizeErrors     atomic.Int64
	QuantizePoints     atomic.Int64
	QuantizeTotalNanos atomic.Int64
	BatchCount         atomic.Int64
	BatchItems         atomic.Int64
	BatchFailed        atomic.Int64
	SaveCount          atomic.Int64
	SaveErrors         atomic.Int64
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
}

// RecordQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuantize(points int, duration time.Duration, err error) {
	b.QuantizeCount.Add(1)
	b.QuantizePoints.Add(int64(points))
	b.QuantizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QuantizeErrors.Add(1)
	}
}

// RecordBatchQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchQuantize(count, failed int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QuantizeCount:     b.QuantizeCount.Load(),
		QuantizeErrors:    b.QuantizeErrors.Load(),
		QuantizePoints:    b.QuantizePoints.Load(),
		QuantizeAvgNanos:  b.getAvgQuantizeNanos(),
		BatchCount:        b.BatchCount.Load(),
		BatchItems:        b.BatchItems.Load(),
		BatchFailed:       b.BatchFailed.Load(),
		SaveCount:         b.SaveCount.Load(),
		SaveErrors:        b.SaveErrors.Load(),
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgQuantizeNanos() int64 {
	count := b.QuantizeCount.Load()
	if count == 0 {
		return 0
	}
	return b.QuantizeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QuantizeCount    int64
	QuantizeErrors   int64
	QuantizePoints   int64
	QuantizeAvgNanos int64
	BatchCount       int64
	BatchItems       int64
	BatchFailed      int64
	SaveCount        int64
	SaveErrors       int64
	LoadCount        int64
	LoadErrors       int64
}
