package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	TokenizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minibun_tokenize_seconds",
		Help:    "Time spent tokenizing a source module.",
		Buckets: prometheus.DefBuckets,
	}, []string{"cached"})

	PassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minibun_pass_seconds",
		Help:    "Time spent in a pipeline pass.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pass"})

	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "minibun_build_seconds",
		Help:    "End-to-end duration of a pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	BuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibun_builds_total",
		Help: "Total number of pipeline runs, by outcome.",
	}, []string{"outcome"})

	ModulesLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minibun_modules_loaded",
		Help: "Number of modules in the current module map.",
	})

	BundleBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minibun_bundle_bytes",
		Help: "Size in bytes of the most recent bundle output.",
	})

	CyclesDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minibun_cycles_detected",
		Help: "Cycle participants reported by the most recent bundle pass.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibun_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RebuildsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibun_rebuilds_throttled_total",
		Help: "Watch-mode rebuilds delayed by the rate limiter.",
	})
)
