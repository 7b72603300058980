// Package metrics holds the prometheus collectors of the service. All methods
// are safe on a nil receiver so tests can pass nil.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes.
const (
	OutcomeDispatched = "dispatched"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

// Media item results.
const (
	MediaPassthrough = "passthrough"
	MediaMigrated    = "migrated"
	MediaKeptInline  = "kept_inline"
)

type Collectors struct {
	HTTPRequests    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DispatchPasses  *prometheus.CounterVec
	HelpersNotified prometheus.Histogram
	FallbackPasses  prometheus.Counter
	PushFailures    prometheus.Counter
	MediaItems      *prometheus.CounterVec
	RecoveryReplays prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdispatch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "helpdispatch_http_request_duration_seconds",
				Help:    "Histogram of response durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		DispatchPasses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdispatch_dispatch_passes_total",
				Help: "Dispatch passes by outcome",
			},
			[]string{"outcome"},
		),
		HelpersNotified: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "helpdispatch_helpers_notified",
				Help:    "Helpers notified per dispatch pass",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
			},
		),
		FallbackPasses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpdispatch_fallback_passes_total",
				Help: "Dispatch passes that used proximity-only fallback matching",
			},
		),
		PushFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpdispatch_push_failures_total",
				Help: "Push job alerts that could not be delivered to the push endpoint",
			},
		),
		MediaItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdispatch_media_items_total",
				Help: "Media items processed by the sideloader by result",
			},
			[]string{"result"},
		),
		RecoveryReplays: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpdispatch_recovery_replays_total",
				Help: "Dispatch passes replayed by the recovery sweep",
			},
		),
	}

	reg.MustRegister(
		c.HTTPRequests,
		c.RequestDuration,
		c.DispatchPasses,
		c.HelpersNotified,
		c.FallbackPasses,
		c.PushFailures,
		c.MediaItems,
		c.RecoveryReplays,
	)

	return c
}

func (c *Collectors) ObserveHTTP(path, method string, status int, seconds float64) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(path, method).Observe(seconds)
}

func (c *Collectors) ObserveDispatch(outcome string, helpersNotified int, fallback bool) {
	if c == nil {
		return
	}
	c.DispatchPasses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeDispatched {
		c.HelpersNotified.Observe(float64(helpersNotified))
	}
	if fallback {
		c.FallbackPasses.Inc()
	}
}

func (c *Collectors) IncPushFailure() {
	if c == nil {
		return
	}
	c.PushFailures.Inc()
}

func (c *Collectors) IncMediaItem(result string) {
	if c == nil {
		return
	}
	c.MediaItems.WithLabelValues(result).Inc()
}

func (c *Collectors) IncRecoveryReplay() {
	if c == nil {
		return
	}
	c.RecoveryReplays.Inc()
}
