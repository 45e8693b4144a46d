// Package metrics holds the Prometheus collectors shared by the store, RPC and health layers.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fastnear"

type storeMetrics struct {
	operations *prometheus.CounterVec
	retries    *prometheus.CounterVec
	reconnects *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

type rpcMetrics struct {
	requests *prometheus.CounterVec
	items    *prometheus.CounterVec
	latency  prometheus.Histogram
}

type healthMetrics struct {
	latency      prometheus.Gauge
	blockDiff    prometheus.Gauge
	healthy      prometheus.Gauge
	syncedHeight prometheus.Gauge
}

var (
	storeOnce     sync.Once
	storeRegistry *storeMetrics

	rpcOnce     sync.Once
	rpcRegistry *rpcMetrics

	healthOnce     sync.Once
	healthRegistry *healthMetrics
)

// Store returns the lazily-initialised collectors for key-value store operations.
func Store() *storeMetrics {
	storeOnce.Do(func() {
		storeRegistry = &storeMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Store operations segmented by operation and outcome.",
			}, []string{"operation", "outcome"}),
			retries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "retries_total",
				Help:      "Failed store attempts that were retried.",
			}, []string{"operation"}),
			reconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "reconnects_total",
				Help:      "Reconnect attempts segmented by outcome.",
			}, []string{"outcome"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operation_duration_seconds",
				Help:      "Latency of store operations including retries.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
		}
		prometheus.MustRegister(
			storeRegistry.operations,
			storeRegistry.retries,
			storeRegistry.reconnects,
			storeRegistry.latency,
		)
	})
	return storeRegistry
}

// Observe records the outcome and total latency of one executed operation.
func (m *storeMetrics) Observe(operation string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Retry counts one failed attempt that will be retried.
func (m *storeMetrics) Retry(operation string) {
	m.retries.WithLabelValues(operation).Inc()
}

// Reconnect counts a reconnect attempt.
func (m *storeMetrics) Reconnect(err error) {
	if err != nil {
		m.reconnects.WithLabelValues("error").Inc()
		return
	}
	m.reconnects.WithLabelValues("ok").Inc()
}

// RPC returns the collectors for the remote balance fallback.
func RPC() *rpcMetrics {
	rpcOnce.Do(func() {
		rpcRegistry = &rpcMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rpc",
				Name:      "batches_total",
				Help:      "Outbound JSON-RPC batches segmented by outcome.",
			}, []string{"outcome"}),
			items: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rpc",
				Name:      "batch_items_total",
				Help:      "Items inside JSON-RPC batches segmented by outcome.",
			}, []string{"outcome"}),
			latency: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rpc",
				Name:      "batch_duration_seconds",
				Help:      "Latency of outbound JSON-RPC batches.",
				Buckets:   prometheus.DefBuckets,
			}),
		}
		prometheus.MustRegister(rpcRegistry.requests, rpcRegistry.items, rpcRegistry.latency)
	})
	return rpcRegistry
}

// ObserveBatch records a completed (or failed) batch and how many of its items resolved.
func (m *rpcMetrics) ObserveBatch(started time.Time, resolved, unresolved int, err error) {
	m.latency.Observe(time.Since(started).Seconds())
	if err != nil {
		m.requests.WithLabelValues("error").Inc()
		return
	}
	m.requests.WithLabelValues("ok").Inc()
	m.items.WithLabelValues("resolved").Add(float64(resolved))
	m.items.WithLabelValues("unresolved").Add(float64(unresolved))
}

// Health returns the gauges refreshed by the health monitor.
func Health() *healthMetrics {
	healthOnce.Do(func() {
		healthRegistry = &healthMetrics{
			latency: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "latency_seconds",
				Help:      "Seconds between now and the timestamp of the latest indexed block.",
			}),
			blockDiff: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "balance_block_diff",
				Help:      "Blocks between the latest synced block and the latest balance block.",
			}),
			healthy: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "healthy",
				Help:      "1 when the derived health verdict is ok, 0 otherwise.",
			}),
			syncedHeight: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "block_height",
				Help:      "Latest block height written by the indexer.",
			}),
		}
		prometheus.MustRegister(
			healthRegistry.latency,
			healthRegistry.blockDiff,
			healthRegistry.healthy,
			healthRegistry.syncedHeight,
		)
	})
	return healthRegistry
}

// Set publishes one health sample. Missing values leave the previous gauge value in place.
func (m *healthMetrics) Set(latencySec *float64, height *uint64, blockDiff *uint64, healthy bool) {
	if latencySec != nil {
		m.latency.Set(*latencySec)
	}
	if height != nil {
		m.syncedHeight.Set(float64(*height))
	}
	if blockDiff != nil {
		m.blockDiff.Set(float64(*blockDiff))
	}
	if healthy {
		m.healthy.Set(1)
	} else {
		m.healthy.Set(0)
	}
}
