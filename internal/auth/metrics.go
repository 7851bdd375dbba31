package auth

import "github.com/prometheus/client_golang/prometheus"

const (
	loginOutcomeSuccess  = "success"
	loginOutcomeRejected = "rejected"
	loginOutcomeError    = "error"
)

// Metrics counts authentication outcomes. Registration happens in the fx
// module so tests can construct services without touching the default
// registry.
type Metrics struct {
	logins *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(m.logins)
}

func (m *Metrics) observeLogin(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}
