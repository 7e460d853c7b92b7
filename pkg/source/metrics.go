package source

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dqgate_dataset_load_duration_seconds",
			Help:    "Time taken to load a dataset",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	loadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dqgate_dataset_load_total",
			Help: "Total number of dataset loads",
		},
		[]string{"format", "outcome"}, // success, error
	)
)
