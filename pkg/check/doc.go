// Package check implements the individual data-quality checks.
//
// # Overview
//
// Each check reads a dataset.Dataset and returns a small result; none of them
// mutates its input or depends on another check, so callers may run them in
// any order or concurrently.
//
//   - DatasetSize: row count against a minimum (bool)
//   - DataTypes: column types against an expected-type dictionary (column list)
//   - NullVariables: null, NaN, empty or sentinel values (column list)
//   - MinMaxRange: rows outside exclusive bounds (filtered dataset)
//   - EssentialColumns: required columns absent from the dataset (column list)
//   - Duplicates: repeated key tuples (bool)
//   - Formats: values not matching a regex or date layout (column list)
//   - Consistency: columns with values outside an expected window (column list)
//
// # Diagnostics
//
// Checks write human readable warning lines to the Checker's output
// (os.Stdout unless WithOutput is given) and structured debug records to slog.
//
// # Errors
//
// A failing check is a normal result, never an error. Errors are reserved for
// broken caller contracts (dictionary without an entry for a checked column,
// empty ignore pattern, bounds that cannot be compared with the column) and
// carry the INVALID_CONFIGURATION code from pkg/errors.
//
// # Usage
//
//	c := check.New()
//	ok, err := c.DatasetSize(ds, 5)
//	wrongTypes, err := c.DataTypes(ds, dict, "load_ts")
//	nullCols, err := c.NullVariables(ds, []string{"id", "name"})
//	bad, present, err := c.MinMaxRange(ds, "amount", 0, 10000)
package check
