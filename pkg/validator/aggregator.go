/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/NVIDIA/dqgate/pkg/header"
)

// ExitCodeDataError is the process exit status for data that failed
// validation (EX_DATAERR).
const ExitCodeDataError = 65

// Aggregator combines check results into a verdict.
type Aggregator struct {
	version string
	out     io.Writer
	exit    func(code int)
}

// Option is a functional option for configuring Aggregator instances.
type Option func(*Aggregator)

// WithVersion returns an Option that sets the version recorded in reports.
func WithVersion(version string) Option {
	return func(a *Aggregator) {
		a.version = version
	}
}

// WithOutput returns an Option that sets the diagnostic output.
func WithOutput(w io.Writer) Option {
	return func(a *Aggregator) {
		if w != nil {
			a.out = w
		}
	}
}

// WithExitFunc returns an Option that replaces the function CheckAll calls
// to terminate the process on failure.
func WithExitFunc(exit func(code int)) Option {
	return func(a *Aggregator) {
		if exit != nil {
			a.exit = exit
		}
	}
}

// New creates a new Aggregator with the provided options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		out:  os.Stdout,
		exit: os.Exit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate evaluates every dimension of in, writes the diagnostic lines and
// returns the report. It does not terminate the process.
func (a *Aggregator) Aggregate(in Inputs) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		Passed:      true,
		Failures:    make([]Failure, 0),
		Diagnostics: make([]string, 0),
		Inputs:      in,
	}
	r.Init(header.KindValidationReport, header.APIVersion, a.version)

	a.emit(r, "Analyzing checks...")

	if len(in.EssentialColumnsMissing) != 0 {
		a.fail(r, DimensionEssential, in.EssentialColumnsMissing,
			fmt.Sprintf("Error checking essential columns: Not all the essential columns are in the imported data. Missed: %v", in.EssentialColumnsMissing))
	}

	if len(in.DataTypeMismatches) != 0 {
		a.fail(r, DimensionTypes, in.DataTypeMismatches,
			fmt.Sprintf("Error checking data types: Some data types loaded do not match: %v", in.DataTypeMismatches))
	}

	if in.DatasetSize.IsFailed() {
		a.fail(r, DimensionSize, nil,
			"Error checking dataset size: The size of the loaded data does not match.")
	}

	if len(in.NullColumns) != 0 {
		a.fail(r, DimensionNulls, in.NullColumns,
			fmt.Sprintf("Error checking nulls: The following columns have null values: %v", in.NullColumns))
	}

	if len(in.FormatMismatches) != 0 {
		a.fail(r, DimensionFormats, in.FormatMismatches,
			fmt.Sprintf("Error checking formats: The following columns formats do not match: %v", in.FormatMismatches))
	}

	if in.Duplicates.IsFailed() {
		a.fail(r, DimensionDuplicates, nil,
			"Error checking duplicates: There are duplicates in the data loaded.")
	}

	if len(in.InconsistentColumns) != 0 {
		a.fail(r, DimensionConsistency, in.InconsistentColumns,
			fmt.Sprintf("Error checking data consistency: The following columns are not consistent: %v", in.InconsistentColumns))
	}

	if in.ExecutionError != "" {
		a.fail(r, DimensionExecution, nil, "Execution error! "+in.ExecutionError)
	}

	if r.Passed {
		a.emit(r, "All checks passed")
		aggregationTotal.WithLabelValues("passed").Inc()
	} else {
		a.emit(r, "Check with errors")
		aggregationTotal.WithLabelValues("failed").Inc()
	}

	slog.Debug("aggregation completed",
		"run_id", r.RunID,
		"passed", r.Passed,
		"failures", len(r.Failures))

	return r
}

// CheckAll aggregates in and returns true when every dimension passed.
// On failure it calls the exit function with ExitCodeDataError; with the
// default os.Exit it does not return.
func (a *Aggregator) CheckAll(in Inputs) bool {
	r := a.Aggregate(in)
	if r.Passed {
		return true
	}

	slog.Error("data validation failed",
		"run_id", r.RunID,
		"failures", len(r.Failures),
		"exit_code", ExitCodeDataError)
	a.exit(ExitCodeDataError)

	return false
}

func (a *Aggregator) fail(r *Report, d Dimension, columns []string, line string) {
	r.Passed = false
	r.Failures = append(r.Failures, Failure{Check: d, Message: line, Columns: columns})
	dimensionFailuresTotal.WithLabelValues(string(d)).Inc()
	a.emit(r, line)
}

func (a *Aggregator) emit(r *Report, line string) {
	r.Diagnostics = append(r.Diagnostics, line)
	fmt.Fprintln(a.out, line)
}
