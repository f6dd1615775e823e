package simcache

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called once Build finishes, successful or not.
	// n is the row count, bytes is the stored value payload size, nullsim
	// is the number of NULLSIM bytes written.
	RecordBuild(n, bytes, nullsim int, duration time.Duration, err error)

	// RecordSave is called after each Save operation.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each Load operation.
	RecordLoad(bytes int, duration time.Duration, err error)

	// RecordQuery is called after each Query call. Implementations that
	// don't need per-lookup granularity should make this cheap or a no-op;
	// it is on the hot path.
	RecordQuery(hit bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordQuery(bool)                                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	RowsBuilt       atomic.Int64
	BytesStored     atomic.Int64
	NullsimCount    atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	QueryHits       atomic.Int64
	QueryMisses     atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(n, bytes, nullsim int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.RowsBuilt.Add(int64(n))
	b.BytesStored.Add(int64(bytes))
	b.NullsimCount.Add(int64(nullsim))
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(hit bool) {
	if hit {
		b.QueryHits.Add(1)
	} else {
		b.QueryMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildAvgNanos: b.getAvgBuildNanos(),
		RowsBuilt:     b.RowsBuilt.Load(),
		BytesStored:   b.BytesStored.Load(),
		NullsimCount:  b.NullsimCount.Load(),
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		QueryHits:     b.QueryHits.Load(),
		QueryMisses:   b.QueryMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	RowsBuilt     int64
	BytesStored   int64
	NullsimCount  int64
	SaveCount     int64
	SaveErrors    int64
	LoadCount     int64
	LoadErrors    int64
	QueryHits     int64
	QueryMisses   int64
}

// PrometheusMetricsCollector records the same events as BasicMetricsCollector
// but exposes them as Prometheus collectors registered against the default
// registry at construction time.
type PrometheusMetricsCollector struct {
	buildDuration prometheus.Histogram
	buildErrors   prometheus.Counter
	rowsStored    prometheus.Gauge
	bytesStored   prometheus.Gauge
	nullsimRatio  prometheus.Gauge
	saveDuration  prometheus.Histogram
	saveErrors    prometheus.Counter
	loadDuration  prometheus.Histogram
	loadErrors    prometheus.Counter
	queryHits     prometheus.Counter
	queryMisses   prometheus.Counter
}

// NewPrometheusMetricsCollector creates and registers the cache's Prometheus
// collectors under the "simcache" namespace.
func NewPrometheusMetricsCollector() *PrometheusMetricsCollector {
	return &PrometheusMetricsCollector{
		buildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "simcache_build_duration_seconds",
			Help: "Duration of Build calls.",
		}),
		buildErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simcache_build_errors_total",
			Help: "Total number of failed Build calls.",
		}),
		rowsStored: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "simcache_rows",
			Help: "Row count of the most recently built matrix (not updated by Load).",
		}),
		bytesStored: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "simcache_bytes_stored",
			Help: "Size in bytes of the value payload of the current matrix.",
		}),
		nullsimRatio: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "simcache_nullsim_ratio",
			Help: "Fraction of stored bytes that encode an undefined pair.",
		}),
		saveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "simcache_save_duration_seconds",
			Help: "Duration of Save calls.",
		}),
		saveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simcache_save_errors_total",
			Help: "Total number of failed Save calls.",
		}),
		loadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "simcache_load_duration_seconds",
			Help: "Duration of Load calls.",
		}),
		loadErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simcache_load_errors_total",
			Help: "Total number of failed Load calls.",
		}),
		queryHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simcache_query_hits_total",
			Help: "Total number of Query calls returning a defined similarity.",
		}),
		queryMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simcache_query_misses_total",
			Help: "Total number of Query calls returning -1.",
		}),
	}
}

// RecordBuild implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordBuild(n, bytes, nullsim int, duration time.Duration, err error) {
	p.buildDuration.Observe(duration.Seconds())
	if err != nil {
		p.buildErrors.Inc()
		return
	}
	p.rowsStored.Set(float64(n))
	p.bytesStored.Set(float64(bytes))
	if bytes > 0 {
		p.nullsimRatio.Set(float64(nullsim) / float64(bytes))
	} else {
		p.nullsimRatio.Set(0)
	}
}

// RecordSave implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	p.saveDuration.Observe(duration.Seconds())
	if err != nil {
		p.saveErrors.Inc()
	}
}

// RecordLoad implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	p.loadDuration.Observe(duration.Seconds())
	if err != nil {
		p.loadErrors.Inc()
		return
	}
	p.bytesStored.Set(float64(bytes))
}

// RecordQuery implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordQuery(hit bool) {
	if hit {
		p.queryHits.Inc()
	} else {
		p.queryMisses.Inc()
	}
}
