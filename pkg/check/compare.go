package check

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

// bound is a range limit converted to the native ordering of a column type.
// compare returns the ordering of a cell value against the limit; ok is
// false when the value is null or cannot be read in the column's ordering,
// in which case the row is never a violation.
type bound interface {
	compare(v any) (c int, ok bool)
}

// newBound converts limit into the ordering of columns of type t.
func newBound(t dataset.DataType, limit any) (bound, error) {
	if limit == nil {
		return nil, fmt.Errorf("limit is null")
	}

	switch {
	case t.IsNumeric():
		n, ok := toNumber(limit)
		if !ok {
			return nil, fmt.Errorf("limit %v (%T) is not numeric", limit, limit)
		}
		if n.isNaN() {
			return nil, fmt.Errorf("limit is NaN")
		}
		return numericBound{n}, nil
	case t.IsTemporal():
		tm, ok := toTime(limit)
		if !ok {
			return nil, fmt.Errorf("limit %v (%T) is not a date or timestamp", limit, limit)
		}
		return timeBound{tm}, nil
	case t == dataset.TypeString:
		switch x := limit.(type) {
		case string:
			return stringBound{x}, nil
		case time.Time:
			// sortable date text, e.g. a YAML timestamp given for a string column
			return stringBound{dataset.FormatValue(x)}, nil
		default:
			return nil, fmt.Errorf("limit %v (%T) is not a string", limit, limit)
		}
	case t == dataset.TypeBoolean:
		b, ok := limit.(bool)
		if !ok {
			return nil, fmt.Errorf("limit %v (%T) is not a boolean", limit, limit)
		}
		return boolBound{b}, nil
	default:
		return nil, fmt.Errorf("columns of type %q have no range ordering", t)
	}
}

// number keeps integers exact and falls back to float64 otherwise.
type number struct {
	isInt bool
	i     int64
	f     float64
}

func (n number) isNaN() bool {
	return !n.isInt && math.IsNaN(n.f)
}

func (n number) float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func compareNumbers(a, b number) int {
	if a.isInt && b.isInt {
		return cmp.Compare(a.i, b.i)
	}
	return cmp.Compare(a.float(), b.float())
}

func toNumber(v any) (number, bool) {
	switch x := v.(type) {
	case int:
		return number{isInt: true, i: int64(x)}, true
	case int8:
		return number{isInt: true, i: int64(x)}, true
	case int16:
		return number{isInt: true, i: int64(x)}, true
	case int32:
		return number{isInt: true, i: int64(x)}, true
	case int64:
		return number{isInt: true, i: x}, true
	case uint8:
		return number{isInt: true, i: int64(x)}, true
	case uint16:
		return number{isInt: true, i: int64(x)}, true
	case uint32:
		return number{isInt: true, i: int64(x)}, true
	case uint64:
		if x > math.MaxInt64 {
			return number{f: float64(x)}, true
		}
		return number{isInt: true, i: int64(x)}, true
	case float32:
		return number{f: float64(x)}, true
	case float64:
		return number{f: x}, true
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return number{isInt: true, i: i}, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return number{f: f}, true
		}
	}
	return number{}, false
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		t, err := dataset.ParseTime(x)
		return t, err == nil
	case []byte:
		t, err := dataset.ParseTime(string(x))
		return t, err == nil
	}
	return time.Time{}, false
}

type numericBound struct{ limit number }

// NaN orders above every number.
func (b numericBound) compare(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	n, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	if n.isNaN() {
		return 1, true
	}
	return compareNumbers(n, b.limit), true
}

type timeBound struct{ limit time.Time }

func (b timeBound) compare(v any) (int, bool) {
	t, ok := toTime(v)
	if !ok {
		return 0, false
	}
	return t.Compare(b.limit), true
}

type stringBound struct{ limit string }

func (b stringBound) compare(v any) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case string:
		return strings.Compare(x, b.limit), true
	case []byte:
		return bytes.Compare(x, []byte(b.limit)), true
	default:
		return strings.Compare(dataset.FormatValue(x), b.limit), true
	}
}

type boolBound struct{ limit bool }

func (b boolBound) compare(v any) (int, bool) {
	x, ok := v.(bool)
	if !ok {
		return 0, false
	}
	switch {
	case x == b.limit:
		return 0, true
	case x:
		return 1, true
	default:
		return -1, true
	}
}
