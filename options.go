package simcache

import (
	"log/slog"

	"github.com/dscroft/wordnet-blast/matrix"
)

type options struct {
	concurrency      int
	maxBand          int
	metricsCollector MetricsCollector
	logger           *Logger
	progress         matrix.ProgressFunc
}

// Option configures a Cache's construction and Build behavior.
//
// Breaking changes are expected while this package is pre-release.
type Option func(*options)

// WithConcurrency caps the number of rows processed concurrently during
// Build. A value of 0 (the default) leaves Build free to use one goroutine
// per runtime.GOMAXPROCS(0) without additional throttling.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMaxBand bounds how far off the diagonal Build evaluates pairs: row a
// only considers columns a+1 through a+maxBand. A value of 0 (the default)
// leaves the window unbounded, matching the core similarity-cache contract
// of "every defined pair, however far apart."
func WithMaxBand(n int) Option {
	return func(o *options) {
		o.maxBand = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// Build/Save/Load/Query operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &simcache.BasicMetricsCollector{}
//	c := simcache.New(simcache.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations. Pass nil to
// disable logging.
//
// Example with JSON logging:
//
//	logger := simcache.NewJSONLogger(slog.LevelInfo)
//	c := simcache.New(simcache.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithProgress registers a callback invoked once per completed row during
// Build, reporting rows finished so far against the total row count.
func WithProgress(fn matrix.ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
