package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegisterer("activity-booking", prometheus.NewRegistry())

	m.ObserveAssignment("assigned")
	m.ObserveAssignment("assigned")
	m.ObserveAssignment("none")
	m.ObserveSlots(3, 2)
	m.ObserveExpired(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AssignmentOutcomes.WithLabelValues("activity-booking", "assigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssignmentOutcomes.WithLabelValues("activity-booking", "none")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SlotsEvaluated.WithLabelValues("activity-booking", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotsEvaluated.WithLabelValues("activity-booking", "false")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ExpiredBookings.WithLabelValues("activity-booking")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAssignment("assigned")
		m.ObserveSlots(1, 1)
		m.ObserveSwapCheck("possible")
		m.ObserveExpired(1)
		m.ObserveTxRetry()
	})
	assert.Empty(t, m.ServiceName())
}
