package check

import (
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// ExpectedTypes is the expected-type lookup the type check runs against.
// It is satisfied by *dictionary.Dictionary.
type ExpectedTypes interface {
	// Lookup returns the expected type of the named column.
	Lookup(name string) (dataset.DataType, bool)

	// Require returns a configuration error naming every column without an entry.
	Require(names []string) error
}

// TypeMismatch describes one column whose actual type differs from the expected one.
type TypeMismatch struct {
	Column   string           `json:"column" yaml:"column"`
	Expected dataset.DataType `json:"expected" yaml:"expected"`
	Actual   dataset.DataType `json:"actual" yaml:"actual"`
}

// DataTypes returns, in schema order, the columns whose type differs from
// the expected type. Columns matching an ignore pattern are removed before
// checking; see dataset.MatchPattern for the pattern syntax.
func (c *Checker) DataTypes(ds dataset.Dataset, expected ExpectedTypes, ignore ...string) ([]string, error) {
	mismatches, err := c.DataTypeMismatches(ds, expected, ignore...)
	if err != nil {
		return nil, err
	}

	wrong := make([]string, len(mismatches))
	for i, m := range mismatches {
		wrong[i] = m.Column
	}
	return wrong, nil
}

// DataTypeMismatches is DataTypes with the expected and actual type of every
// offending column.
func (c *Checker) DataTypeMismatches(ds dataset.Dataset, expected ExpectedTypes, ignore ...string) (mismatches []TypeMismatch, err error) {
	start := time.Now()
	defer func() { observe("types", start, outcomeOf(len(mismatches) == 0, err)) }()

	if expected == nil {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig, "expected-type dictionary is required")
	}
	for _, p := range ignore {
		if strings.TrimSpace(p) == "" {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig, "ignore list contains an empty column name")
		}
	}

	view := ds
	if len(ignore) > 0 {
		dropped := dataset.MatchColumns(ds.Schema().Names(), ignore)
		slog.Debug("ignoring columns for type check", "columns", dropped)
		view = ds.Drop(dropped...)
	}

	schema := view.Schema()
	if err := expected.Require(schema.Names()); err != nil {
		return nil, err
	}

	mismatches = make([]TypeMismatch, 0)
	for _, f := range schema {
		want, _ := expected.Lookup(f.Name)
		if f.Type != want {
			slog.Debug("column type mismatch", "column", f.Name, "expected", want, "actual", f.Type)
			mismatches = append(mismatches, TypeMismatch{Column: f.Name, Expected: want, Actual: f.Type})
		}
	}

	return mismatches, nil
}
