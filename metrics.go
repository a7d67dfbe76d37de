package centermap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each layout construction.
	// structures and atoms describe the input, err is nil if successful.
	RecordBuild(structures, atoms int, duration time.Duration, err error)

	// RecordTranslate is called after each selection translation.
	// selected is the number of ordinals supplied across all species.
	RecordTranslate(selected int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTranslate(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	BuildAtoms          atomic.Int64
	BuildTotalNanos     atomic.Int64
	TranslateCount      atomic.Int64
	TranslateErrors     atomic.Int64
	TranslateOrdinals   atomic.Int64
	TranslateTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_, atoms int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildAtoms.Add(int64(atoms))
}

// RecordTranslate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTranslate(selected int, duration time.Duration, err error) {
	b.TranslateCount.Add(1)
	b.TranslateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TranslateErrors.Add(1)
		return
	}
	b.TranslateOrdinals.Add(int64(selected))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		BuildAtoms:        b.BuildAtoms.Load(),
		BuildAvgNanos:     avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		TranslateCount:    b.TranslateCount.Load(),
		TranslateErrors:   b.TranslateErrors.Load(),
		TranslateOrdinals: b.TranslateOrdinals.Load(),
		TranslateAvgNanos: avg(b.TranslateTotalNanos.Load(), b.TranslateCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	BuildAtoms        int64
	BuildAvgNanos     int64
	TranslateCount    int64
	TranslateErrors   int64
	TranslateOrdinals int64
	TranslateAvgNanos int64
}
