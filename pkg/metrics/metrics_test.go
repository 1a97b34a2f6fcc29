package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveDispatch(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "booking-svc")

	m.ObserveDispatch("sent", "LMS", 3)
	m.ObserveDispatch("failed", "LMS", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CampaignDispatchTotal.WithLabelValues("booking-svc", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CampaignDispatchTotal.WithLabelValues("booking-svc", "failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CampaignRecipients.WithLabelValues("booking-svc", "LMS")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveDispatch("sent", "SMS", 1)
		m.ObserveReconcile("ok")
		m.ObserveBooking("create", "ok")
	})
}
