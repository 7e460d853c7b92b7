package check

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// Duplicates reports whether every row has a distinct tuple of key values.
// With no key columns the whole row is the key. Two nulls are equal.
func (c *Checker) Duplicates(ds dataset.Dataset, keys ...string) (ok bool, err error) {
	start := time.Now()
	defer func() { observe("duplicates", start, outcomeOf(ok, err)) }()

	view := ds
	if len(keys) > 0 {
		view, err = ds.Select(unique(keys)...)
		if err != nil {
			return false, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig, "invalid duplicate key", err)
		}
	}

	seen := make(map[string]struct{}, view.Count())
	dups := 0
	for r := range view.Rows() {
		k := rowKey(r.Values())
		if _, exists := seen[k]; exists {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}

	if dups > 0 {
		c.printf("WARNING: %d duplicated rows found on key %v!\n", dups, view.Schema().Names())
		slog.Debug("duplicate rows found", "count", dups, "key", view.Schema().Names())
		return false, nil
	}

	return true, nil
}

// rowKey encodes values so that distinct tuples never collide: each value is
// tagged with its Go type and length-prefixed.
func rowKey(values []any) string {
	var b strings.Builder
	for _, v := range values {
		if v == nil {
			b.WriteString("~;")
			continue
		}
		s := dataset.FormatValue(v)
		fmt.Fprintf(&b, "%T:%d:%s;", v, len(s), s)
	}
	return b.String()
}
