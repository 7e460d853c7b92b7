package source

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

// numericText matches integers, decimals and scientific notation.
var numericText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// candidates are tried in order; the first type reading every non-empty
// cell of a column wins.
var candidates = []struct {
	typ   dataset.DataType
	parse func(string) (any, bool)
}{
	{dataset.TypeInt, parseInt32},
	{dataset.TypeBigInt, parseInt64},
	{dataset.TypeDouble, parseDouble},
	{dataset.TypeBoolean, parseBool},
	{dataset.TypeDate, parseDate},
	{dataset.TypeTimestamp, parseTimestamp},
}

// typeColumn infers the type of a text column and converts its cells.
// Empty cells become nil. A column with no non-empty cell is string.
func typeColumn(cells []string) (dataset.DataType, []any) {
	values := make([]any, len(cells))

	nonEmpty := 0
	for _, c := range cells {
		if c != "" {
			nonEmpty++
		}
	}

	if nonEmpty > 0 {
	next:
		for _, cand := range candidates {
			for i, c := range cells {
				if c == "" {
					values[i] = nil
					continue
				}
				v, ok := cand.parse(strings.TrimSpace(c))
				if !ok {
					continue next
				}
				values[i] = v
			}
			return cand.typ, values
		}
	}

	for i, c := range cells {
		if c == "" {
			values[i] = nil
			continue
		}
		values[i] = c
	}
	return dataset.TypeString, values
}

func parseInt32(s string) (any, bool) {
	i, err := strconv.ParseInt(s, 10, 32)
	return int32(i), err == nil
}

func parseInt64(s string) (any, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

func parseDouble(s string) (any, bool) {
	if s == "NaN" {
		return math.NaN(), true
	}
	if !numericText.MatchString(s) {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseBool(s string) (any, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return nil, false
}

func parseDate(s string) (any, bool) {
	if !dataset.IsDateOnly(s) {
		return nil, false
	}
	t, err := dataset.ParseTime(s)
	return t, err == nil
}

func parseTimestamp(s string) (any, bool) {
	t, err := dataset.ParseTime(s)
	return t, err == nil
}
