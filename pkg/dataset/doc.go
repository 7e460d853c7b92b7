// Package dataset defines the tabular data abstraction the quality checks run against.
//
// # Overview
//
// A Dataset is an ordered schema of named, typed columns plus rows. Checks only
// need a handful of operations from it:
//
//   - Count: number of rows
//   - Schema: ordered (name, type) pairs
//   - Column: per-column value access
//   - Filter: derived view of rows matching a predicate
//   - Drop / Select: derived views with fewer columns
//
// Implementations must never mutate the receiver; Filter, Drop and Select
// return new views. Table is the in-memory implementation used by the
// file and database sources and by tests.
//
// # Type Labels
//
// Column types use engine-native labels ("string", "int", "bigint", "double",
// "boolean", "date", "timestamp", ...). Expected-type dictionaries are written
// against the same labels, so the type check is a plain label comparison.
//
// # Values
//
// Cell values are plain Go values: nil, string, bool, int64, float64,
// time.Time or []byte. A cell may also hold raw text that did not convert to
// the column type (for example "NULL" in a timestamp column); the null
// check relies on seeing that text.
//
// # Usage
//
//	tbl, err := dataset.NewTable(dataset.Schema{
//	    {Name: "id", Type: dataset.TypeBigInt},
//	    {Name: "name", Type: dataset.TypeString},
//	}, [][]any{
//	    {int64(1), "ada"},
//	    {int64(2), nil},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tbl.Count()) // 2
package dataset
