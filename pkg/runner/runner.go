// Package runner loads a dataset and its expected-type dictionary, runs the
// checks a rules document asks for and aggregates their results.
//
// Loading failures are not returned as errors: they become the execution
// error input of the aggregation, so the run still produces a failing report.
// Configuration errors (a rules document that does not fit the dataset) are
// returned to the caller.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/dqgate/pkg/check"
	"github.com/NVIDIA/dqgate/pkg/dataset"
	"github.com/NVIDIA/dqgate/pkg/dictionary"
	"github.com/NVIDIA/dqgate/pkg/rules"
	"github.com/NVIDIA/dqgate/pkg/source"
	"github.com/NVIDIA/dqgate/pkg/validator"
)

// Opener loads the dataset of a rules document.
type Opener func(ctx context.Context, spec source.Spec) (dataset.Dataset, error)

// DictionaryLoader loads an expected-type dictionary.
type DictionaryLoader func(path string) (*dictionary.Dictionary, error)

// Runner runs the checks of rules documents.
type Runner struct {
	version    string
	out        io.Writer
	open       Opener
	dictionary DictionaryLoader
	guard      source.Guard
}

// Option is a functional option for configuring Runner instances.
type Option func(*Runner)

// WithVersion returns an Option that sets the version recorded in reports.
func WithVersion(version string) Option {
	return func(r *Runner) {
		r.version = version
	}
}

// WithOutput returns an Option that sets the diagnostic output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithOpener returns an Option that replaces the dataset loader.
func WithOpener(open Opener) Option {
	return func(r *Runner) {
		if open != nil {
			r.open = open
		}
	}
}

// WithDictionaryLoader returns an Option that replaces the dictionary loader.
func WithDictionaryLoader(load DictionaryLoader) Option {
	return func(r *Runner) {
		if load != nil {
			r.dictionary = load
		}
	}
}

// WithGuard returns an Option that limits the datasets and dictionaries
// HandleValidate may read.
func WithGuard(g source.Guard) Option {
	return func(r *Runner) {
		r.guard = g
	}
}

// New creates a new Runner with the provided options.
func New(opts ...Option) *Runner {
	r := &Runner{
		out:        os.Stdout,
		open:       source.Open,
		dictionary: dictionary.Load,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run runs rs with a default Runner.
func Run(ctx context.Context, rs *rules.Rules, opts ...Option) (*validator.Report, error) {
	return New(opts...).Run(ctx, rs)
}

// Run loads the dataset and dictionary of rs, runs every configured check
// concurrently and aggregates the results. The returned report is never nil
// when err is nil. Run does not terminate the process.
func (r *Runner) Run(ctx context.Context, rs *rules.Rules) (*validator.Report, error) {
	if rs == nil {
		return nil, fmt.Errorf("rules cannot be nil")
	}

	start := time.Now()
	aggregator := validator.New(validator.WithOutput(r.out), validator.WithVersion(r.version))

	ds, dict, err := r.load(ctx, rs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Error("failed to load validation inputs", "error", err)
		report := aggregator.Aggregate(validator.Inputs{ExecutionError: err.Error()})
		report.Duration = time.Since(start)
		return report, nil
	}

	in, lines, err := r.evaluate(ctx, rs, ds, dict)
	if err != nil {
		return nil, err
	}

	report := aggregator.Aggregate(in)
	report.CheckDiagnostics = lines
	report.Duration = time.Since(start)
	report.Metadata["dataset"] = source.Redact(rs.Dataset.URI)
	report.Metadata["rows"] = fmt.Sprint(ds.Count())

	slog.Debug("validation run complete",
		"passed", report.Passed,
		"failures", len(report.Failures),
		"duration", report.Duration)

	return report, nil
}

// load reads the dataset and, when the type check runs, the dictionary.
func (r *Runner) load(ctx context.Context, rs *rules.Rules) (dataset.Dataset, *dictionary.Dictionary, error) {
	var (
		ds   dataset.Dataset
		dict *dictionary.Dictionary
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		ds, err = r.open(ctx, rs.Dataset)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		return nil
	})

	if rs.TypesEnabled() {
		g.Go(func() error {
			var err error
			dict, err = r.dictionary(rs.Dictionary)
			if err != nil {
				return fmt.Errorf("failed to load dictionary: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ds, dict, nil
}

// evaluate runs the configured checks concurrently. Each check writes its
// diagnostics into its own buffer; the buffers are copied to the output in
// a fixed order once all checks are done, and returned as lines.
func (r *Runner) evaluate(ctx context.Context, rs *rules.Rules, ds dataset.Dataset, dict *dictionary.Dictionary) (validator.Inputs, []string, error) {
	var (
		in           validator.Inputs
		mu           sync.Mutex
		inconsistent = make(map[string][]string)
	)
	c := rs.Checks

	type task struct {
		name string
		out  bytes.Buffer
		run  func(*check.Checker) error
	}
	tasks := make([]*task, 0, 8)
	add := func(name string, run func(*check.Checker) error) {
		tasks = append(tasks, &task{name: name, run: run})
	}

	if len(c.Essential) > 0 {
		add("essential", func(ck *check.Checker) error {
			missing := ck.EssentialColumns(ds, c.Essential)
			mu.Lock()
			in.EssentialColumnsMissing = missing
			mu.Unlock()
			return nil
		})
	}

	if rs.TypesEnabled() {
		add("types", func(ck *check.Checker) error {
			wrong, err := ck.DataTypes(ds, dict, c.Types.Ignore...)
			if err != nil {
				return err
			}
			mu.Lock()
			in.DataTypeMismatches = wrong
			mu.Unlock()
			return nil
		})
	}

	if c.MinRows != nil {
		add("size", func(ck *check.Checker) error {
			ok, err := ck.DatasetSize(ds, ptr.Deref(c.MinRows, 0))
			if err != nil {
				return err
			}
			mu.Lock()
			in.DatasetSize = check.FlagOf(ok)
			mu.Unlock()
			return nil
		})
	}

	if len(c.NotNull) > 0 {
		add("nulls", func(ck *check.Checker) error {
			wrong, err := ck.NullVariables(ds, c.NotNull)
			if err != nil {
				return err
			}
			mu.Lock()
			in.NullColumns = wrong
			mu.Unlock()
			return nil
		})
	}

	if len(c.Formats) > 0 {
		add("formats", func(ck *check.Checker) error {
			wrong, err := ck.Formats(ds, c.FormatRules())
			if err != nil {
				return err
			}
			mu.Lock()
			in.FormatMismatches = wrong
			mu.Unlock()
			return nil
		})
	}

	if c.DuplicatesEnabled() {
		add("duplicates", func(ck *check.Checker) error {
			ok, err := ck.Duplicates(ds, c.Unique...)
			if err != nil {
				return err
			}
			mu.Lock()
			in.Duplicates = check.FlagOf(ok)
			mu.Unlock()
			return nil
		})
	}

	if len(c.Ranges) > 0 {
		add("ranges", func(ck *check.Checker) error {
			wrong := make([]string, 0)
			for _, rule := range c.Ranges {
				violations, present, err := ck.MinMaxRange(ds, rule.Column, rule.Min, rule.Max)
				if err != nil {
					return err
				}
				if present && violations.Count() > 0 {
					wrong = append(wrong, rule.Column)
				}
			}
			mu.Lock()
			inconsistent["ranges"] = wrong
			mu.Unlock()
			return nil
		})
	}

	if len(c.Consistency) > 0 {
		add("consistency", func(ck *check.Checker) error {
			wrong, err := ck.Consistency(ds, c.Consistency)
			if err != nil {
				return err
			}
			mu.Lock()
			inconsistent["consistency"] = wrong
			mu.Unlock()
			return nil
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("running check", "check", t.name)
			if err := t.run(check.New(check.WithOutput(&t.out))); err != nil {
				return fmt.Errorf("%s check: %w", t.name, err)
			}
			return nil
		})
	}
	err := g.Wait()

	lines := make([]string, 0)
	for _, t := range tasks {
		text := t.out.String()
		for line := range strings.Lines(text) {
			if line = strings.TrimRight(line, "\n"); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if _, werr := io.WriteString(r.out, text); werr != nil {
			slog.Warn("failed to write check diagnostics", "check", t.name, "error", werr)
		}
	}
	if err != nil {
		return validator.Inputs{}, nil, err
	}

	for _, name := range []string{"ranges", "consistency"} {
		for _, col := range inconsistent[name] {
			if !slices.Contains(in.InconsistentColumns, col) {
				in.InconsistentColumns = append(in.InconsistentColumns, col)
			}
		}
	}

	return in, lines, nil
}

// confine applies the runner's guard to the dataset and dictionary of rs.
func (r *Runner) confine(rs *rules.Rules) error {
	spec, err := r.guard.Confine(rs.Dataset)
	if err != nil {
		return err
	}
	rs.Dataset = spec

	if rs.Dictionary != "" {
		path, err := r.guard.ConfinePath(rs.Dictionary)
		if err != nil {
			return err
		}
		rs.Dictionary = path
	}
	return nil
}
