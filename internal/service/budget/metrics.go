package budget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartbudget",
			Name:      "transactions_recorded_total",
			Help:      "Transactions persisted, by kind",
		},
		[]string{"kind"},
	)
	reportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartbudget",
			Name:      "report_build_duration_seconds",
			Help:      "Time spent aggregating a monthly report",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
