package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"barangay/internal/apperr"
)

// Metrics counts ledger operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics registers the service collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Document request ledger operations by outcome.",
			},
			[]string{"operation", "result"},
		),
	}
	reg.MustRegister(m.operations)
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, apperr.ErrForbidden):
		return "forbidden"
	}
	return "error"
}
