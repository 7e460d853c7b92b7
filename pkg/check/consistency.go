package check

import (
	"slices"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

// Consistency returns, in rule order, the columns whose values are not all
// inside their expected window, e.g. an event date that must fall on the day
// the file was produced. A column absent from the dataset cannot be shown
// consistent and is reported as well.
func (c *Checker) Consistency(ds dataset.Dataset, rules []RangeRule) (wrong []string, err error) {
	start := time.Now()
	defer func() { observe("consistency", start, outcomeOf(len(wrong) == 0, err)) }()

	wrong = make([]string, 0)
	for _, rule := range rules {
		violations, present, err := c.MinMaxRange(ds, rule.Column, rule.Min, rule.Max)
		if err != nil {
			return nil, err
		}
		if (!present || violations.Count() > 0) && !slices.Contains(wrong, rule.Column) {
			wrong = append(wrong, rule.Column)
		}
	}

	return wrong, nil
}
