package metrics

import (
	"out-of-office/internal/shared/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the workflow counters exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Transitions      *prometheus.CounterVec
	WorkflowFailures *prometheus.CounterVec
	BalanceDays      prometheus.Counter
	OutboxPublished  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ooo_status_transitions_total",
			Help: "Status transitions applied to leave and approval requests.",
		}, []string{"entity", "from", "to"}),
		WorkflowFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ooo_workflow_failures_total",
			Help: "Rejected or failed workflow operations by error code.",
		}, []string{"operation", "code"}),
		BalanceDays: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ooo_balance_days_added_total",
			Help: "Absence days added to employee balances on approval.",
		}),
		OutboxPublished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ooo_outbox_published_total",
			Help: "Outbox events handed to Kafka.",
		}, []string{"status"}),
	}

	m.OutboxPublished.WithLabelValues("success")
	m.OutboxPublished.WithLabelValues("failure")

	return m
}

func (m *Metrics) ObserveTransition(entity, from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(entity, from, to).Inc()
}

func (m *Metrics) ObserveFailure(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.WorkflowFailures.WithLabelValues(operation, apperror.CodeOf(err)).Inc()
}

func (m *Metrics) AddBalanceDays(days int) {
	if m == nil || days <= 0 {
		return
	}
	m.BalanceDays.Add(float64(days))
}

func (m *Metrics) ObserveOutbox(ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failure"
	}
	m.OutboxPublished.WithLabelValues(status).Inc()
}
