package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the canonical text rendering of timestamp values.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the canonical text rendering of date values.
const DateLayout = "2006-01-02"

// timeLayouts are tried in order when parsing temporal text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	TimestampLayout,
	"2006-01-02T15:04:05",
	DateLayout,
	"2006/01/02",
	"20060102",
}

// ParseTime parses temporal text in one of the supported layouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time %q", s)
}

// IsDateOnly reports whether s parses as a bare calendar date.
func IsDateOnly(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006/01/02", "20060102"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsNaN reports whether v is a floating point not-a-number.
func IsNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	default:
		return false
	}
}

// FormatValue renders a cell value as text the way a string cast would.
// Nil renders as the empty string; callers must check for nil first when
// the distinction matters.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(DateLayout)
		}
		return x.Format(TimestampLayout)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatTyped renders a cell value of a column of type t. Temporal values use
// the column's layout, so a timestamp at midnight keeps its time part.
func FormatTyped(v any, t DataType) string {
	if tm, ok := v.(time.Time); ok {
		switch t {
		case TypeTimestamp:
			return tm.Format(TimestampLayout)
		case TypeDate:
			return tm.Format(DateLayout)
		}
	}
	return FormatValue(v)
}
