package crm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gietcrm",
			Name:      "store_operations_total",
			Help:      "Data-access operations issued against the backend.",
		},
		[]string{"op"},
	)

	storeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gietcrm",
			Name:      "store_operation_failures_total",
			Help:      "Operations that failed, including read failures swallowed into empty results.",
		},
		[]string{"op"},
	)
)
