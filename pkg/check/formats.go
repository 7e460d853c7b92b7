package check

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// DateFormatPrefix marks a format given as a Go time layout rather than a
// regular expression, e.g. "date:02-01-2006".
const DateFormatPrefix = "date:"

// FormatRule is the expected text format of one column.
type FormatRule struct {
	Column string `json:"column" yaml:"column"`
	// Format is a regular expression that must match the whole value, or
	// DateFormatPrefix followed by a time layout.
	Format string `json:"format" yaml:"format"`
}

type matcher func(string) bool

func compileFormat(format string) (matcher, error) {
	if layout, ok := strings.CutPrefix(format, DateFormatPrefix); ok {
		if layout == "" {
			return nil, fmt.Errorf("empty date layout")
		}
		return func(s string) bool {
			_, err := time.Parse(layout, s)
			return err == nil
		}, nil
	}

	if format == "" {
		return nil, fmt.Errorf("empty format")
	}
	re, err := regexp.Compile("^(?:" + format + ")$")
	if err != nil {
		return nil, err
	}
	return re.MatchString, nil
}

// Formats returns, in rule order, the columns with at least one non-null
// value that does not match the column's format. Every rule's column must exist.
func (c *Checker) Formats(ds dataset.Dataset, rules []FormatRule) (wrong []string, err error) {
	start := time.Now()
	defer func() { observe("formats", start, outcomeOf(len(wrong) == 0, err)) }()

	schema := ds.Schema()
	wrong = make([]string, 0)
	for _, rule := range rules {
		field, ok := schema.Lookup(rule.Column)
		if !ok {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("format check requested for column %q not in dataset", rule.Column))
		}
		match, err := compileFormat(rule.Format)
		if err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid format for column %q", rule.Column), err)
		}

		values, err := ds.Column(rule.Column)
		if err != nil {
			return nil, err
		}

		bad := 0
		for _, v := range values {
			if v == nil {
				continue
			}
			if !match(dataset.FormatTyped(v, field.Type)) {
				bad++
			}
		}

		if bad > 0 {
			c.printf("WARNING: column %s has %d values not matching format %q!\n", rule.Column, bad, rule.Format)
			slog.Debug("format mismatches found", "column", rule.Column, "count", bad)
			if !slices.Contains(wrong, rule.Column) {
				wrong = append(wrong, rule.Column)
			}
		}
	}

	return wrong, nil
}
