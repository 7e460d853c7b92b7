package check

import "fmt"

// Flag is the outcome of a boolean-shaped check. The zero value is
// NotEvaluated, which the aggregator treats as passing.
type Flag int

const (
	NotEvaluated Flag = iota
	Passed
	Failed
)

// FlagOf converts a check's boolean verdict into a Flag.
func FlagOf(ok bool) Flag {
	if ok {
		return Passed
	}
	return Failed
}

// IsFailed reports whether the check ran and failed.
func (f Flag) IsFailed() bool {
	return f == Failed
}

// String returns the flag label.
func (f Flag) String() string {
	switch f {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "not-evaluated"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "passed", "true":
		*f = Passed
	case "failed", "false":
		*f = Failed
	case "not-evaluated", "":
		*f = NotEvaluated
	default:
		return fmt.Errorf("invalid check flag %q", string(text))
	}
	return nil
}
