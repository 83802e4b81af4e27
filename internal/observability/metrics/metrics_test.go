package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission(OutcomeOK)
	m.ObserveSubmission(OutcomeDegraded)
	m.ObserveConfirmation(true)
	m.ObserveConfirmation(false)
	m.ObserveSubmitLatency(0.2)
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission(OutcomeValidationError)
	m.ObserveConfirmation(false)
	m.ObserveSubmitLatency(0.1)
}
