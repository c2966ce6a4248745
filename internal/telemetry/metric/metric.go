// Package metric provides Prometheus metrics for kvdb.
//
// It exposes metrics in Prometheus format for monitoring store operations,
// cache effectiveness, compaction activity, and request latencies.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	// Store metrics
	OpsTotal    *prometheus.CounterVec
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	Compactions prometheus.Counter
	LogBytes    prometheus.Gauge
	KeysLive    prometheus.Gauge

	// Request metrics
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	r := &Registry{
		reg: reg,
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kvdb_ops_total",
			Help: "Store operations by op and result.",
		}, []string{"op", "result"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kvdb_cache_hits_total",
			Help: "Value cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kvdb_cache_misses_total",
			Help: "Value cache misses.",
		}),
		Compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kvdb_compactions_total",
			Help: "Completed log compactions.",
		}),
		LogBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kvdb_log_bytes",
			Help: "Current log file size in bytes.",
		}),
		KeysLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kvdb_keys_live",
			Help: "Number of live keys in the index.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kvdb_request_duration_seconds",
			Help:    "HTTP request duration by path and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "status"}),
	}

	reg.MustRegister(
		r.OpsTotal,
		r.CacheHits,
		r.CacheMisses,
		r.Compactions,
		r.LogBytes,
		r.KeysLive,
		r.RequestDuration,
	)

	return r
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
