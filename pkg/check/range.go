package check

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// RangeRule bounds the values of one column.
type RangeRule struct {
	Column string `json:"column" yaml:"column"`
	Min    any    `json:"min" yaml:"min"`
	Max    any    `json:"max" yaml:"max"`
}

// MinMaxRange returns the rows whose value of column is strictly below
// minLimit or strictly above maxLimit; values equal to a limit pass.
// Limits are compared in the column's native ordering: numeric for numeric
// columns, chronological for dates and timestamps (text limits are parsed),
// lexicographic for strings. Null values never violate.
//
// present is false, and violations nil, when the column does not exist.
// An empty violations dataset means the column is fully in range.
func (c *Checker) MinMaxRange(ds dataset.Dataset, column string, minLimit, maxLimit any) (violations dataset.Dataset, present bool, err error) {
	start := time.Now()
	defer func() {
		observe("range", start, outcomeOf(violations == nil || violations.Count() == 0, err))
	}()

	f, ok := ds.Schema().Lookup(column)
	if !ok {
		c.printf("%s column is not in the dataset\n", column)
		return nil, false, nil
	}

	lo, err := newBound(f.Type, minLimit)
	if err != nil {
		return nil, true, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid minimum for column %q", column), err)
	}
	hi, err := newBound(f.Type, maxLimit)
	if err != nil {
		return nil, true, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid maximum for column %q", column), err)
	}

	violations = ds.Filter(func(r dataset.Row) bool {
		v, _ := r.Get(column)
		if below, ok := lo.compare(v); ok && below < 0 {
			return true
		}
		if above, ok := hi.compare(v); ok && above > 0 {
			return true
		}
		return false
	})

	if n := violations.Count(); n > 0 {
		c.printf("WARNING: parameter %s out of range in: %d entries!\n", column, n)
		slog.Debug("range violations found", "column", column, "count", n, "min", minLimit, "max", maxLimit)
	}

	return violations, true, nil
}
