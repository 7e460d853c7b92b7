/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dqgate_aggregation_total",
			Help: "Total number of aggregations by verdict",
		},
		[]string{"verdict"}, // passed, failed
	)

	dimensionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dqgate_dimension_failures_total",
			Help: "Total number of failing dimensions across aggregations",
		},
		[]string{"check"},
	)
)
