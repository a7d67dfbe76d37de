package centermap

import (
	"log/slog"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	allowUnsorted    bool
	parallelism      int
}

// Option configures layout construction and translation behavior.
// Options given to Build, BuildBySpecies or Restore stay attached to the
// returned Layout and apply to every translation on it.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &centermap.BasicMetricsCollector{}
//	layout, _ := centermap.Build(structures, centermap.WithMetricsCollector(metrics))
//	// ... translate selections ...
//	stats := metrics.GetStats()
//	fmt.Printf("Translations: %d, Avg latency: %dns\n", stats.TranslateCount, stats.TranslateAvgNanos)
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

// WithUnsortedSelections accepts selections in arbitrary order.
//
// Ordinals are resolved by binary search over the stride table, so order does
// not affect correctness. By default a decreasing pair is rejected with
// ErrUnsortedSelection to surface callers that rely on sorted input elsewhere.
func WithUnsortedSelections() Option {
	return func(o *options) {
		o.allowUnsorted = true
	}
}

// WithParallelism sets how many species are translated concurrently by
// TranslateAll. Values below 1 are treated as 1.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		parallelism:      1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
