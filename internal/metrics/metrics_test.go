package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRPC("/schedule.v1.ScheduleService/GetWeek", "OK", 0.01)
	m.ObserveMutation("add", nil)
	m.ObserveMutation("add", nil)
	m.ObserveMutation("remove", errors.New("disk full"))
	m.SetAppointments(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutationTotal.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutationTotal.WithLabelValues("remove", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcTotal.WithLabelValues("/schedule.v1.ScheduleService/GetWeek", "OK")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.appointments))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("method", "OK", 0.1)
	m.ObserveMutation("add", nil)
	m.SetAppointments(1)
}
