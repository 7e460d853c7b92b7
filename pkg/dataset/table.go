package dataset

import (
	"fmt"
	"iter"
	"slices"

	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// Table is an in-memory Dataset.
// Views derived from a Table share row storage with it.
type Table struct {
	schema Schema
	rows   [][]any
}

// NewTable creates a table. Every row must have exactly one value per column
// and column names must be unique.
func NewTable(schema Schema, rows [][]any) (*Table, error) {
	seen := make(map[string]struct{}, len(schema))
	for _, f := range schema {
		if f.Name == "" {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest, "column name cannot be empty")
		}
		if _, dup := seen[f.Name]; dup {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest, fmt.Sprintf("duplicate column %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	for i, r := range rows {
		if len(r) != len(schema) {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("row %d has %d values, schema has %d columns", i, len(r), len(schema)))
		}
	}

	return &Table{schema: slices.Clone(schema), rows: rows}, nil
}

// Append adds a row to the table.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.schema) {
		return dqerrors.New(dqerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("row has %d values, schema has %d columns", len(values), len(t.schema)))
	}
	t.rows = append(t.rows, values)
	return nil
}

// Count returns the number of rows.
func (t *Table) Count() int {
	return len(t.rows)
}

// Schema returns a copy of the table's schema.
func (t *Table) Schema() Schema {
	return slices.Clone(t.schema)
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]any, error) {
	i := t.schema.Index(name)
	if i < 0 {
		return nil, dqerrors.New(dqerrors.ErrCodeNotFound, fmt.Sprintf("column %q not found", name))
	}

	values := make([]any, len(t.rows))
	for r, row := range t.rows {
		values[r] = row[i]
	}
	return values, nil
}

// Rows iterates over all rows.
func (t *Table) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, row := range t.rows {
			if !yield(Row{schema: t.schema, values: row}) {
				return
			}
		}
	}
}

// Filter returns a view holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) Dataset {
	kept := make([][]any, 0)
	for _, row := range t.rows {
		if keep(Row{schema: t.schema, values: row}) {
			kept = append(kept, row)
		}
	}
	return &Table{schema: t.schema, rows: kept}
}

// Drop returns a view without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) Dataset {
	keep := make([]string, 0, len(t.schema))
	for _, f := range t.schema {
		if !slices.Contains(names, f.Name) {
			keep = append(keep, f.Name)
		}
	}

	// every kept name exists, so projection cannot fail
	view, _ := t.project(keep)
	return view
}

// Select returns a view with only the named columns, in the given order.
func (t *Table) Select(names ...string) (Dataset, error) {
	return t.project(names)
}

func (t *Table) project(names []string) (*Table, error) {
	idx := make([]int, len(names))
	schema := make(Schema, len(names))
	for i, name := range names {
		pos := t.schema.Index(name)
		if pos < 0 {
			return nil, dqerrors.New(dqerrors.ErrCodeNotFound, fmt.Sprintf("column %q not found", name))
		}
		idx[i] = pos
		schema[i] = t.schema[pos]
	}

	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		projected := make([]any, len(idx))
		for i, pos := range idx {
			projected[i] = row[pos]
		}
		rows[r] = projected
	}

	return &Table{schema: schema, rows: rows}, nil
}
