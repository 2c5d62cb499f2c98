// Package metrics holds the Prometheus collectors shared by the fetch client
// and the pollers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeTransport   = "transport_error"
	OutcomeApplication = "application_error"
)

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_fetch_total",
		Help: "Backend fetches by resource and outcome",
	}, []string{"resource", "outcome"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "board_fetch_duration_seconds",
		Help:    "Backend fetch latency",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"resource"})

	PollCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_poll_cycles_total",
		Help: "Fetch-and-reconcile passes by page and trigger",
	}, []string{"page", "trigger"})

	DiscardedResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_discarded_responses_total",
		Help: "Responses that resolved after their page was unmounted",
	}, []string{"page"})

	MountedPages = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "board_mounted_pages",
		Help: "Pages currently mounted",
	}, []string{"page"})
)
