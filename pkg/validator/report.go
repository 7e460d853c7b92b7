/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/NVIDIA/dqgate/pkg/check"
	"github.com/NVIDIA/dqgate/pkg/header"
)

// Dimension names one aggregated check.
type Dimension string

const (
	DimensionEssential   Dimension = "essential"
	DimensionTypes       Dimension = "types"
	DimensionSize        Dimension = "size"
	DimensionNulls       Dimension = "nulls"
	DimensionFormats     Dimension = "formats"
	DimensionDuplicates  Dimension = "duplicates"
	DimensionConsistency Dimension = "consistency"
	DimensionExecution   Dimension = "execution"
)

// Inputs holds the results of every check for one dataset. The zero value
// passes.
type Inputs struct {
	// EssentialColumnsMissing lists essential columns absent from the dataset.
	EssentialColumnsMissing []string `json:"essentialColumnsMissing,omitempty" yaml:"essentialColumnsMissing,omitempty"`

	// DataTypeMismatches lists columns whose type differs from the dictionary.
	DataTypeMismatches []string `json:"dataTypeMismatches,omitempty" yaml:"dataTypeMismatches,omitempty"`

	// DatasetSize is the outcome of the minimum row count check.
	DatasetSize check.Flag `json:"datasetSize,omitempty" yaml:"datasetSize,omitempty"`

	// NullColumns lists columns holding missing values.
	NullColumns []string `json:"nullColumns,omitempty" yaml:"nullColumns,omitempty"`

	// FormatMismatches lists columns with values not in the expected format.
	FormatMismatches []string `json:"formatMismatches,omitempty" yaml:"formatMismatches,omitempty"`

	// Duplicates is the outcome of the duplicate rows check.
	Duplicates check.Flag `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// InconsistentColumns lists columns with values outside their expected window.
	InconsistentColumns []string `json:"inconsistentColumns,omitempty" yaml:"inconsistentColumns,omitempty"`

	// ExecutionError is the description of a failure caught before or while
	// the checks ran. Any non-empty value fails the run.
	ExecutionError string `json:"executionError,omitempty" yaml:"executionError,omitempty"`
}

// Failure is one failing dimension.
type Failure struct {
	Check   Dimension `json:"check" yaml:"check"`
	Message string    `json:"message" yaml:"message"`
	Columns []string  `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Report is the result of one aggregation.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID uniquely identifies the aggregation.
	RunID string `json:"runId" yaml:"runId"`

	// Passed is the verdict: true iff no dimension failed.
	Passed bool `json:"passed" yaml:"passed"`

	// Failures lists the failing dimensions in evaluation order.
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`

	// Diagnostics holds the diagnostic lines in the order they were written.
	Diagnostics []string `json:"diagnostics" yaml:"diagnostics"`

	// CheckDiagnostics holds the lines the individual checks wrote, such as
	// out-of-range counts and per-column null counts.
	CheckDiagnostics []string `json:"checkDiagnostics,omitempty" yaml:"checkDiagnostics,omitempty"`

	// Inputs are the check results the verdict was derived from.
	Inputs Inputs `json:"inputs" yaml:"inputs"`

	// Duration is how long the checks took, when known.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Failed reports whether the named dimension failed.
func (r *Report) Failed(d Dimension) bool {
	for _, f := range r.Failures {
		if f.Check == d {
			return true
		}
	}
	return false
}
