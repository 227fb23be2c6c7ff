// Package metrics регистрирует счётчики исходов мутаций над пользователями.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MutationsTotal считает мутации по виду операции и исходу.
var MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "user_manager",
	Name:      "mutations_total",
	Help:      "Count of user mutations by operation and outcome",
}, []string{"operation", "outcome"})

// ObserveMutation фиксирует исход одной мутации.
func ObserveMutation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	MutationsTotal.WithLabelValues(operation, outcome).Inc()
}
