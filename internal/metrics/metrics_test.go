package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_OutcomesAreCountedSeparately(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncExtraction(OutcomeExtractFailed)
	m.IncExtraction(OutcomeFetchFailed)
	m.IncExtraction(OutcomeFetchFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeExtractFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeFetchFailed)))
	assert.NotEqual(t, OutcomeFetchFailed, OutcomeExtractFailed)
}

func TestMetrics_DecisionsAndFetchDuration(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncDecision(DecisionAccepted)
	m.IncDecision(DecisionDeclined)
	m.IncDecision(DecisionDeclined)
	m.ObserveFetch(1.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues(DecisionAccepted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues(DecisionDeclined)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
