package check

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dqgate_check_duration_seconds",
			Help:    "Time taken by individual data-quality checks",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"check"}, // size, types, nulls, range, essential, duplicates, formats, consistency
	)

	checkTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dqgate_check_total",
			Help: "Total number of data-quality check runs",
		},
		[]string{"check", "outcome"}, // pass, fail or error
	)
)
