package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The service only instruments; the host application owns the registry and
// its exposition.
var (
	opsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "currencybank",
			Name:      "ledger_operations_total",
			Help:      "Total number of ledger operations by outcome",
		},
		[]string{"op", "outcome"},
	)
	idRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "currencybank",
			Name:      "ledger_id_retries_total",
			Help:      "Total number of random ID draws discarded due to collisions",
		},
	)
)
