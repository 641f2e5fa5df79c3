package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the scheduling service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	rpcTotal      *prometheus.CounterVec
	rpcLatency    *prometheus.HistogramVec
	mutationTotal *prometheus.CounterVec
	appointments  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total schedule service calls",
		}, []string{"method", "code"}),
		rpcLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "rpc",
			Name:      "latency_seconds",
			Help:      "Latency of schedule service calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		mutationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "repository",
			Name:      "mutations_total",
			Help:      "Appointment repository writes",
		}, []string{"op", "result"}),
		appointments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic",
			Subsystem: "repository",
			Name:      "appointments",
			Help:      "Appointments currently held",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.rpcTotal, m.rpcLatency, m.mutationTotal, m.appointments)
	return m
}

func (m *Metrics) ObserveRPC(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcLatency.WithLabelValues(method).Observe(seconds)
}

func (m *Metrics) ObserveMutation(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutationTotal.WithLabelValues(op, result).Inc()
}

func (m *Metrics) SetAppointments(n int) {
	if m == nil {
		return
	}
	m.appointments.Set(float64(n))
}
