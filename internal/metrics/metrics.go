package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeNoDateTime     = "no_datetime"
	OutcomeUnparseable    = "unparseable"
	OutcomeNotReady       = "not_ready"
	OutcomeFetchFailed    = "fetch_failed"
	OutcomeExtractFailed  = "extract_failed"
	OutcomeNotBookingPage = "not_booking_page"
)

// Confirmation decisions.
const (
	DecisionAccepted = "accepted"
	DecisionDeclined = "declined"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ExtractionsTotal *prometheus.CounterVec
	DecisionsTotal   *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
}

// NewMetrics registers the metrics with reg; nil means the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookingcal_extractions_total",
			Help: "Booking pages processed, by outcome.",
		}, []string{"outcome"}),
		DecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookingcal_decisions_total",
			Help: "Calendar link confirmations, by decision.",
		}, []string{"decision"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookingcal_fetch_duration_seconds",
			Help:    "Time spent loading a booking page until it is ready.",
			Buckets: []float64{1, 2, 5, 10, 15, 30},
		}),
	}
}

// IncExtraction counts one processed booking page under an Outcome* label.
func (m *Metrics) IncExtraction(outcome string) {
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
}

// IncDecision counts one answered confirmation under a Decision* label.
func (m *Metrics) IncDecision(decision string) {
	m.DecisionsTotal.WithLabelValues(decision).Inc()
}

// ObserveFetch records how long a page took to load and become ready.
func (m *Metrics) ObserveFetch(seconds float64) {
	m.FetchDuration.Observe(seconds)
}
