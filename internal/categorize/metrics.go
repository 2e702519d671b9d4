package categorize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classifierOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartbudget",
			Subsystem: "categorize",
			Name:      "classifier_outcomes_total",
			Help:      "Classifier calls by outcome (suggested, empty, error, panic)",
		},
		[]string{"outcome"},
	)
	keywordMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartbudget",
			Subsystem: "categorize",
			Name:      "keyword_results_total",
			Help:      "Keyword table results (keyword or default)",
		},
		[]string{"result"},
	)
)
