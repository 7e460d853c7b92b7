package dataset

import (
	"iter"
	"strings"
)

// DataType is an engine-native column type label.
type DataType string

const (
	TypeString    DataType = "string"
	TypeBoolean   DataType = "boolean"
	TypeTinyInt   DataType = "tinyint"
	TypeSmallInt  DataType = "smallint"
	TypeInt       DataType = "int"
	TypeBigInt    DataType = "bigint"
	TypeFloat     DataType = "float"
	TypeDouble    DataType = "double"
	TypeDecimal   DataType = "decimal"
	TypeDate      DataType = "date"
	TypeTimestamp DataType = "timestamp"
	TypeBinary    DataType = "binary"
)

// String returns the label.
func (t DataType) String() string {
	return string(t)
}

// IsTemporal reports whether the type is a date or timestamp.
func (t DataType) IsTemporal() bool {
	return t == TypeDate || t == TypeTimestamp
}

// IsIntegral reports whether the type holds whole numbers.
func (t DataType) IsIntegral() bool {
	switch t {
	case TypeTinyInt, TypeSmallInt, TypeInt, TypeBigInt:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of this type order numerically.
// Parameterized decimals ("decimal(10,2)") are numeric.
func (t DataType) IsNumeric() bool {
	if t.IsIntegral() || t == TypeFloat || t == TypeDouble || t == TypeDecimal {
		return true
	}
	return strings.HasPrefix(string(t), string(TypeDecimal)+"(")
}

// Field is a single named, typed column.
type Field struct {
	Name string   `json:"name" yaml:"name"`
	Type DataType `json:"type" yaml:"type"`
}

// Schema is the ordered list of columns of a dataset.
type Schema []Field

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the named field.
func (s Schema) Lookup(name string) (Field, bool) {
	if i := s.Index(name); i >= 0 {
		return s[i], true
	}
	return Field{}, false
}

// Has reports whether the named column exists.
func (s Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// Row is a read-only view of one record.
type Row struct {
	schema Schema
	values []any
}

// Get returns the value of the named column. The second result is false
// when the column does not exist.
func (r Row) Get(name string) (any, bool) {
	i := r.schema.Index(name)
	if i < 0 {
		return nil, false
	}
	return r.values[i], true
}

// Values returns the row's values in schema order. Callers must not modify it.
func (r Row) Values() []any {
	return r.values
}

// Dataset is the tabular collection under validation.
type Dataset interface {
	// Count returns the number of rows.
	Count() int

	// Schema returns the ordered columns.
	Schema() Schema

	// Column returns every value of the named column in row order.
	Column(name string) ([]any, error)

	// Rows iterates over all rows.
	Rows() iter.Seq[Row]

	// Filter returns a view holding the rows for which keep returns true.
	Filter(keep func(Row) bool) Dataset

	// Drop returns a view without the named columns. Unknown names are ignored.
	Drop(names ...string) Dataset

	// Select returns a view with only the named columns, in the given order.
	Select(names ...string) (Dataset, error)
}
