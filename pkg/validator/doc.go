/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator aggregates the outcome of every data-quality check run
// against one dataset into a single verdict.
//
// # Overview
//
// Checks run independently (see package check) and their results are
// collected into Inputs. The Aggregator inspects every dimension without
// short-circuiting, writes one diagnostic line per failing dimension, and
// returns a Report with the verdict:
//
//	Analyzing checks...
//	Error checking data types: Some data types loaded do not match: [age]
//	Error checking nulls: The following columns have null values: [name]
//	Check with errors
//
// # Inputs
//
// List-shaped dimensions fail when non-empty. Flag-shaped dimensions (size,
// duplicates) fail only when check.Failed; check.NotEvaluated passes.
// A non-empty ExecutionError, the text of an upstream failure such as a
// dataset that could not be loaded, always fails.
//
// # Termination
//
// Aggregate never ends the process. CheckAll is the pipeline gate: on
// failure it calls the configured exit function, os.Exit with
// ExitCodeDataError unless overridden by WithExitFunc:
//
//	a := validator.New(validator.WithVersion(version))
//	a.CheckAll(inputs) // exits 65 on any failure
//
// Embedding callers that own termination use Aggregate and inspect
// Report.Passed instead.
package validator
