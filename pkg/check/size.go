package check

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// DatasetSize reports whether ds has at least minExpected rows.
func (c *Checker) DatasetSize(ds dataset.Dataset, minExpected int) (ok bool, err error) {
	start := time.Now()
	defer func() { observe("size", start, outcomeOf(ok, err)) }()

	if minExpected < 0 {
		return false, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("minimum expected size must be non-negative, got %d", minExpected))
	}

	s := ds.Count()
	slog.Debug("dataset size checked", "rows", s, "min_expected", minExpected)

	if s < minExpected {
		c.printf("WARNING!: migrated table has lower size (%d) than the minimum expected (%d)!\n", s, minExpected)
		return false, nil
	}

	return true, nil
}
