package metrics_test

import (
	"errors"
	"testing"

	"out-of-office/internal/metrics"
	"out-of-office/internal/shared/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(_ *testing.T) {
	reg := prometheus.NewRegistry()

	_ = metrics.NewMetrics(reg)
}

func TestMetrics_Observe(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.ObserveTransition("leave_request", "SUBMITTED", "APPROVED")
	m.ObserveFailure("leave.toggle", apperror.ErrConflict)
	m.ObserveFailure("leave.toggle", errors.New("boom"))
	m.AddBalanceDays(3)
	m.AddBalanceDays(0)
	m.ObserveOutbox(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("leave_request", "SUBMITTED", "APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkflowFailures.WithLabelValues("leave.toggle", apperror.CodeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkflowFailures.WithLabelValues("leave.toggle", apperror.CodeInternalError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BalanceDays))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("failure")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveTransition("leave_request", "NEW", "SUBMITTED")
		m.ObserveFailure("x", errors.New("y"))
		m.AddBalanceDays(2)
		m.ObserveOutbox(true)
	})
}
