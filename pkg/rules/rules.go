// Package rules defines the document describing which checks run against
// one dataset.
//
//	kind: ValidationRules
//	apiVersion: dqgate.nvidia.com/v1alpha1
//	dataset:
//	  uri: data/orders.csv
//	dictionary: dict/orders.csv
//	checks:
//	  minRows: 5
//	  types:
//	    ignore: ["_*"]
//	  notNull: [id, name]
//	  essential: [id, amount]
//	  unique: [id]
//	  formats:
//	    id: "[0-9]+"
//	    day: "date:2006-01-02"
//	  ranges:
//	    - {column: amount, min: 0, max: 10000}
//	  consistency:
//	    - {column: created_at, min: "2024-01-01", max: "2024-01-31"}
//
// Every check is optional. An unset minRows or duplicates check is reported
// as not evaluated; the type check runs whenever a dictionary is given,
// unless types.enabled is false.
package rules

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/dqgate/pkg/check"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
	"github.com/NVIDIA/dqgate/pkg/header"
	"github.com/NVIDIA/dqgate/pkg/source"
)

// Rules is a validation rules document.
type Rules struct {
	header.Header `json:",inline" yaml:",inline"`

	// Dataset is the data under validation.
	Dataset source.Spec `json:"dataset" yaml:"dataset"`

	// Dictionary is the path of the expected-type dictionary.
	Dictionary string `json:"dictionary,omitempty" yaml:"dictionary,omitempty"`

	// Checks selects and configures the checks.
	Checks Checks `json:"checks" yaml:"checks"`
}

// Checks configures each check. Zero values disable a check.
type Checks struct {
	// MinRows is the minimum expected row count.
	MinRows *int `json:"minRows,omitempty" yaml:"minRows,omitempty"`

	// Types configures the type check.
	Types TypeRules `json:"types,omitempty" yaml:"types,omitempty"`

	// NotNull lists columns that must not hold missing values.
	NotNull []string `json:"notNull,omitempty" yaml:"notNull,omitempty"`

	// Essential lists columns that must be present.
	Essential []string `json:"essential,omitempty" yaml:"essential,omitempty"`

	// Duplicates enables the duplicate rows check over Unique, or over
	// every column when Unique is empty.
	Duplicates bool `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// Unique lists the key columns of the duplicate rows check. Setting it
	// enables the check.
	Unique []string `json:"unique,omitempty" yaml:"unique,omitempty"`

	// Formats maps a column to its expected format, a regular expression
	// or check.DateFormatPrefix followed by a time layout.
	Formats map[string]string `json:"formats,omitempty" yaml:"formats,omitempty"`

	// Ranges bound column values. A column outside its range is reported
	// as inconsistent; a column absent from the dataset is skipped.
	Ranges []check.RangeRule `json:"ranges,omitempty" yaml:"ranges,omitempty"`

	// Consistency lists the expected value window of columns. A column
	// absent from the dataset is reported as inconsistent.
	Consistency []check.RangeRule `json:"consistency,omitempty" yaml:"consistency,omitempty"`
}

// TypeRules configures the type check.
type TypeRules struct {
	// Enabled defaults to true when a dictionary is configured.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Ignore lists column names or patterns (prefix*, *suffix, *infix*)
	// excluded from the type check.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// TypesEnabled reports whether the type check runs.
func (r *Rules) TypesEnabled() bool {
	return r.Dictionary != "" && ptr.Deref(r.Checks.Types.Enabled, true)
}

// DuplicatesEnabled reports whether the duplicate rows check runs.
func (c *Checks) DuplicatesEnabled() bool {
	return c.Duplicates || len(c.Unique) > 0
}

// FormatRules returns the format rules sorted by column name.
func (c *Checks) FormatRules() []check.FormatRule {
	out := make([]check.FormatRule, 0, len(c.Formats))
	for _, col := range slices.Sorted(maps.Keys(c.Formats)) {
		out = append(out, check.FormatRule{Column: col, Format: c.Formats[col]})
	}
	return out
}

// Load reads a rules document from a YAML or JSON file. Relative dataset
// and dictionary paths are resolved against the document's directory.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeNotFound, fmt.Sprintf("failed to read rules %q", path), err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules %q: %w", path, err)
	}

	base := filepath.Dir(path)
	r.Dictionary = resolve(base, r.Dictionary)
	if !strings.Contains(r.Dataset.URI, "://") && r.Dataset.URI != source.StdinURI {
		r.Dataset.URI = resolve(base, r.Dataset.URI)
	}

	return r, nil
}

// Parse decodes and validates a YAML or JSON rules document.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig, "invalid rules document", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the document for configuration errors.
func (r *Rules) Validate() error {
	if !r.Is(header.KindValidationRules) {
		return dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("unexpected rules kind %q, want %q", r.Kind, header.KindValidationRules))
	}
	if strings.TrimSpace(r.Dataset.URI) == "" {
		return dqerrors.New(dqerrors.ErrCodeInvalidConfig, "dataset.uri is required")
	}

	c := r.Checks
	if c.MinRows != nil && *c.MinRows < 0 {
		return dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("checks.minRows must be non-negative, got %d", *c.MinRows))
	}
	if ptr.Deref(c.Types.Enabled, false) && r.Dictionary == "" {
		return dqerrors.New(dqerrors.ErrCodeInvalidConfig, "checks.types requires a dictionary")
	}

	lists := map[string][]string{
		"checks.types.ignore": c.Types.Ignore,
		"checks.notNull":      c.NotNull,
		"checks.essential":    c.Essential,
		"checks.unique":       c.Unique,
	}
	for _, field := range slices.Sorted(maps.Keys(lists)) {
		for i, name := range lists[field] {
			if strings.TrimSpace(name) == "" {
				return dqerrors.New(dqerrors.ErrCodeInvalidConfig,
					fmt.Sprintf("%s[%d] is empty", field, i))
			}
		}
	}

	for col, f := range c.Formats {
		if strings.TrimSpace(col) == "" || strings.TrimSpace(f) == "" {
			return dqerrors.New(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("checks.formats entry %q has an empty column or format", col))
		}
	}

	for field, rules := range map[string][]check.RangeRule{"checks.ranges": c.Ranges, "checks.consistency": c.Consistency} {
		for i, rr := range rules {
			if strings.TrimSpace(rr.Column) == "" {
				return dqerrors.New(dqerrors.ErrCodeInvalidConfig, fmt.Sprintf("%s[%d].column is required", field, i))
			}
			if rr.Min == nil || rr.Max == nil {
				return dqerrors.New(dqerrors.ErrCodeInvalidConfig,
					fmt.Sprintf("%s[%d] needs both min and max", field, i))
			}
		}
	}

	return nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
