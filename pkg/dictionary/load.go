package dictionary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
	"github.com/NVIDIA/dqgate/pkg/header"
)

const (
	// CSVNameColumn is the CSV header holding the canonical column name.
	CSVNameColumn = "final_name"

	// CSVTypeColumn is the CSV header holding the expected type label.
	CSVTypeColumn = "migration_type"
)

// Document is the YAML/JSON form of a dictionary.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Entries []Entry `json:"entries" yaml:"entries"`
}

// NewDocument wraps entries in a TypeDictionary document stamped with version.
func NewDocument(entries []Entry, version string) *Document {
	doc := &Document{Entries: entries}
	doc.Init(header.KindTypeDictionary, header.APIVersion, version)
	return doc
}

// FromSchema returns the entries matching the columns of schema.
func FromSchema(schema dataset.Schema) []Entry {
	entries := make([]Entry, len(schema))
	for i, f := range schema {
		entries[i] = Entry{Name: f.Name, Type: f.Type}
	}
	return entries
}

// Load reads a dictionary from a YAML, JSON or CSV file, chosen by extension.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeNotFound,
			fmt.Sprintf("failed to read dictionary %q", path), err)
	}

	var d *Dictionary
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		d, err = ParseCSV(bytes.NewReader(data))
	default:
		// JSON is a subset of YAML
		d, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %q: %w", path, err)
	}

	slog.Debug("loaded expected-type dictionary", "path", path, "entries", d.Len())
	return d, nil
}

// ParseYAML parses a YAML or JSON dictionary document.
func ParseYAML(data []byte) (*Dictionary, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig, "invalid dictionary document", err)
	}
	if !doc.Is(header.KindTypeDictionary) {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("unexpected dictionary kind %q, want %q", doc.Kind, header.KindTypeDictionary))
	}
	return New(doc.Entries)
}

// ParseCSV parses a dictionary table with final_name and migration_type columns.
func ParseCSV(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig, "failed to read dictionary header", err)
	}

	nameIdx, typeIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case CSVNameColumn:
			nameIdx = i
		case CSVTypeColumn:
			typeIdx = i
		}
	}
	if nameIdx < 0 || typeIdx < 0 {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("dictionary CSV must have %q and %q columns", CSVNameColumn, CSVTypeColumn))
	}

	entries := make([]Entry, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("failed to read dictionary line %d", line), err)
		}
		if nameIdx >= len(rec) || typeIdx >= len(rec) {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig,
				fmt.Sprintf("dictionary line %d has %d fields", line, len(rec)))
		}
		entries = append(entries, Entry{Name: rec[nameIdx], Type: dataset.DataType(rec[typeIdx])})
	}

	return New(entries)
}
