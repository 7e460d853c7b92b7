package check

import (
	"log/slog"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

// EssentialColumns returns, in request order, the essential columns that are
// absent from the dataset.
func (c *Checker) EssentialColumns(ds dataset.Dataset, essential []string) []string {
	start := time.Now()

	schema := ds.Schema()
	missing := make([]string, 0)
	for _, name := range unique(essential) {
		if !schema.Has(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		slog.Debug("essential columns missing", "columns", missing)
	}
	observe("essential", start, outcomeOf(len(missing) == 0, nil))

	return missing
}
