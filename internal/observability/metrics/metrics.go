package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcome labels.
const (
	OutcomeOK               = "ok"
	OutcomeDegraded         = "degraded"
	OutcomeValidationError  = "validation_error"
	OutcomePersistenceError = "persistence_error"
	OutcomeInFlight         = "in_flight"
)

// LeadMetrics exposes counters/histograms for the lead submission flow.
type LeadMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	confirmationTotal *prometheus.CounterVec
	submitLatency     prometheus.Histogram
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcapture",
			Subsystem: "submission",
			Name:      "submissions_total",
			Help:      "Total lead form submissions by outcome",
		}, []string{"outcome"}),
		confirmationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcapture",
			Subsystem: "notify",
			Name:      "confirmation_email_total",
			Help:      "Total confirmation email attempts",
		}, []string{"status"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadcapture",
			Subsystem: "submission",
			Name:      "submit_latency_seconds",
			Help:      "Latency of the full submit flow",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.confirmationTotal, m.submitLatency)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveConfirmation(sent bool) {
	if m == nil {
		return
	}
	status := "failed"
	if sent {
		status = "sent"
	}
	m.confirmationTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}
