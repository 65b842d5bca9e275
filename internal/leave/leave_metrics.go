package leave

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	requests  *prometheus.CounterVec
	decisions *prometheus.CounterVec
}

// NewMetrics registers the leave counters on reg. A nil reg keeps the
// counters unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worksphere_leave_requests_total",
			Help: "Leave creation attempts by outcome.",
		}, []string{"outcome"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worksphere_leave_decisions_total",
			Help: "Leave approvals and rejections.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.decisions)
	}
	return m
}

func (m *Metrics) observeRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeDecision(status string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(status).Inc()
}
