// Package metrics exports Prometheus instrumentation for the market-data
// feed and cache. All metrics live under the "tradebot" namespace and are
// served on the HTTP API's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SweepsTotal counts completed refresher sweeps.
var SweepsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "feed",
		Name:      "sweeps_total",
		Help:      "Total number of completed refresh sweeps",
	},
)

// SweepDuration observes the wall time of one full sweep.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "tradebot",
		Subsystem: "feed",
		Name:      "sweep_duration_seconds",
		Help:      "Duration of a full refresh sweep in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
)

// FetchErrors counts per-pair fetch failures during sweeps.
var FetchErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "feed",
		Name:      "fetch_errors_total",
		Help:      "Total number of failed candle fetches",
	},
	[]string{"symbol", "timeframe"},
)

// CacheHits counts rate-cache reads served from cached series.
var CacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total number of rate cache hits",
	},
	[]string{"timeframe"},
)

// CacheFallbacks counts reads that fell through to a direct source fetch.
var CacheFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "cache",
		Name:      "fallbacks_total",
		Help:      "Total number of cache misses served by a direct fetch",
	},
	[]string{"timeframe"},
)

// CachedSeries tracks the number of (symbol, timeframe) entries held.
var CachedSeries = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "tradebot",
		Subsystem: "cache",
		Name:      "series",
		Help:      "Number of cached candle series",
	},
)
