package check

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Checker runs checks and writes their diagnostic lines.
type Checker struct {
	out io.Writer
}

// Option is a functional option for configuring Checker instances.
type Option func(*Checker)

// WithOutput returns an Option that sets the diagnostic output.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		if w != nil {
			c.out = w
		}
	}
}

// New creates a new Checker with the provided options.
func New(opts ...Option) *Checker {
	c := &Checker{out: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// observe records duration and outcome of a single check run.
func observe(name string, start time.Time, outcome string) {
	checkDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	checkTotal.WithLabelValues(name, outcome).Inc()
}

func outcomeOf(passed bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case passed:
		return "pass"
	default:
		return "fail"
	}
}

// unique returns names without repeats, keeping first occurrences in order.
func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
