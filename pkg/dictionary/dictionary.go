// Package dictionary holds the expected column types a dataset is checked against.
//
// A dictionary maps canonical column names to expected type labels. It can be
// loaded from YAML/JSON:
//
//	kind: TypeDictionary
//	entries:
//	  - name: id
//	    type: bigint
//	  - name: created_at
//	    type: timestamp
//
// or from CSV with at least the columns final_name and migration_type:
//
//	final_name,migration_type,description
//	id,bigint,surrogate key
//
// When a name appears more than once the first entry wins.
package dictionary

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// Entry is one expected column type.
type Entry struct {
	Name string           `json:"name" yaml:"name"`
	Type dataset.DataType `json:"type" yaml:"type"`
}

// Dictionary is an immutable lookup from column name to expected type.
type Dictionary struct {
	entries []Entry
	index   map[string]dataset.DataType
}

// New builds a dictionary from entries. Names and types are trimmed;
// entries with an empty name are rejected.
func New(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]dataset.DataType, len(entries)),
	}

	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		typ := dataset.DataType(strings.TrimSpace(string(e.Type)))
		if name == "" {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("dictionary entry %d has an empty name", i))
		}
		if typ == "" {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("dictionary entry %q has an empty type", name))
		}
		if prev, dup := d.index[name]; dup {
			slog.Debug("ignoring duplicate dictionary entry",
				"name", name, "kept", prev, "ignored", typ)
			continue
		}
		d.index[name] = typ
		d.entries = append(d.entries, Entry{Name: name, Type: typ})
	}

	return d, nil
}

// Lookup returns the expected type of the named column.
func (d *Dictionary) Lookup(name string) (dataset.DataType, bool) {
	t, ok := d.index[name]
	return t, ok
}

// Len returns the number of distinct names.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Entries returns the distinct entries in load order.
func (d *Dictionary) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Names returns the distinct names in load order.
func (d *Dictionary) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.Name
	}
	return names
}

// Require verifies that every name has an entry. The returned configuration
// error lists every missing name, with the closest known name when one is near.
func (d *Dictionary) Require(names []string) error {
	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := d.index[name]; ok {
			continue
		}
		if s := Suggest(name, d.Names()); s != "" {
			missing = append(missing, fmt.Sprintf("%s (did you mean %q?)", name, s))
		} else {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return dqerrors.WrapWithContext(dqerrors.ErrCodeInvalidConfig,
		"expected-type dictionary is incomplete",
		fmt.Errorf("no entry for: %s", strings.Join(missing, ", ")),
		map[string]any{"missing": len(missing)})
}

// Suggest returns the candidate closest to name by edit distance, or "" when
// none is close enough to be a plausible typo.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	limit := max(2, len(name)/3)
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
