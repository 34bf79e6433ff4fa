package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NegotiationMetrics records plan generation outcomes and latency.
type NegotiationMetrics struct {
	duration *prometheus.HistogramVec
	plans    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewNegotiationMetrics registers the negotiation metrics on the provided registerer.
func NewNegotiationMetrics(reg prometheus.Registerer) *NegotiationMetrics {
	if reg == nil {
		return &NegotiationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "negotiation_plan_duration_seconds",
		Help:    "Duration of negotiation plan generation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"drafter"})
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "negotiation_plans_generated",
		Help: "Generated negotiation plans by drafter.",
	}, []string{"drafter"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "negotiation_plan_failures",
		Help: "Failed negotiation plan generations.",
	}, []string{"drafter"})
	reg.MustRegister(duration, plans, failures)
	return &NegotiationMetrics{
		duration: duration,
		plans:    plans,
		failures: failures,
	}
}

// ObserveDuration records generation latency for the named drafter.
func (m *NegotiationMetrics) ObserveDuration(drafter string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(drafter)).Observe(duration.Seconds())
}

// IncGenerated increments the generated-plan counter for the named drafter.
func (m *NegotiationMetrics) IncGenerated(drafter string) {
	if m == nil || m.plans == nil {
		return
	}
	m.plans.WithLabelValues(normalizeLabel(drafter)).Inc()
}

// IncFailure increments the failure counter for the named drafter.
func (m *NegotiationMetrics) IncFailure(drafter string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(drafter)).Inc()
}

func normalizeLabel(drafter string) string {
	if drafter == "" {
		return "unknown"
	}
	return drafter
}
