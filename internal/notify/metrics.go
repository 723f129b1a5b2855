package notify

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts notification attempts per channel. Register it once with a
// prometheus.Registerer; a nil *Metrics records nothing.
type Metrics struct {
	sends    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beastmode",
			Name:      "notifications_total",
			Help:      "Notification send attempts labeled by channel, message type and result (ok, failed, suppressed).",
		}, []string{"channel", "type", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "beastmode",
			Name:      "notification_duration_seconds",
			Help:      "Time spent on a single outbound notification request.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"channel"}),
	}
	if reg != nil {
		reg.MustRegister(m.sends, m.duration)
	}
	return m
}

func (m *Metrics) observe(r Result, t MessageType) {
	if m == nil {
		return
	}
	result := "ok"
	if !r.OK {
		result = "failed"
	}
	m.sends.WithLabelValues(r.Channel, string(t), result).Inc()
	m.duration.WithLabelValues(r.Channel).Observe(r.Duration.Seconds())
}

func (m *Metrics) suppressed(t MessageType) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues("all", string(t), "suppressed").Inc()
}
