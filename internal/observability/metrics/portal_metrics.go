package metrics

import "github.com/prometheus/client_golang/prometheus"

// PortalMetrics tracks domain events: login outcomes and lifecycle
// transitions of the cancellation flow.
type PortalMetrics struct {
	loginAttempts *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

func NewPortalMetrics() (*PortalMetrics, error) {
	m := &PortalMetrics{
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seasonworker_login_attempts_total",
			Help: "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seasonworker_cancellation_transitions_total",
			Help: "Cancellation lifecycle transitions by event and outcome.",
		}, []string{"event", "outcome"}),
	}

	for _, collector := range []prometheus.Collector{m.loginAttempts, m.transitions} {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *PortalMetrics) RecordLogin(role, outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(role, outcome).Inc()
}

func (m *PortalMetrics) RecordTransition(event, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event, outcome).Inc()
}
