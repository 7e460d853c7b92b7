package check

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// NullSentinels are the literal markers for missing data inside text values.
// A value containing one of them anywhere counts as missing, so "NULLIFY"
// is flagged as well.
var NullSentinels = []string{"NULL", "None"}

// NullVariables returns, in request order, the columns that hold at least one
// missing value: nil, NaN (non-temporal columns only), the empty string, or
// text containing a NullSentinel. Every requested column must exist.
func (c *Checker) NullVariables(ds dataset.Dataset, columns []string) (wrong []string, err error) {
	start := time.Now()
	defer func() { observe("nulls", start, outcomeOf(len(wrong) == 0, err)) }()

	schema := ds.Schema()
	requested := make([]dataset.Field, 0, len(columns))
	missing := make([]string, 0)
	for _, name := range unique(columns) {
		f, ok := schema.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		requested = append(requested, f)
	}
	if len(missing) > 0 {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("null check requested for columns not in dataset: %s", strings.Join(missing, ", ")))
	}

	counts := make([]int, len(requested))
	for i, f := range requested {
		values, err := ds.Column(f.Name)
		if err != nil {
			return nil, err
		}
		temporal := f.Type.IsTemporal()
		for _, v := range values {
			if IsMissing(v, temporal) {
				counts[i]++
			}
		}
	}

	c.showCounts(requested, counts)

	wrong = make([]string, 0)
	for i, f := range requested {
		if counts[i] != 0 {
			slog.Debug("column has missing values", "column", f.Name, "count", counts[i])
			wrong = append(wrong, f.Name)
		}
	}

	return wrong, nil
}

// IsMissing reports whether a single value counts as missing. NaN is only
// considered for non-temporal columns.
func IsMissing(v any, temporal bool) bool {
	if v == nil {
		return true
	}
	if !temporal && dataset.IsNaN(v) {
		return true
	}

	s := dataset.FormatValue(v)
	if s == "" {
		return true
	}
	for _, sentinel := range NullSentinels {
		if strings.Contains(s, sentinel) {
			return true
		}
	}
	return false
}

// showCounts prints the per-column missing value counts as a table.
func (c *Checker) showCounts(fields []dataset.Field, counts []int) {
	if len(fields) == 0 {
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tMISSING")
	for i, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", f.Name, f.Type, counts[i])
	}
	if err := tw.Flush(); err != nil {
		slog.Warn("failed to write null counts", "error", err)
	}
}
