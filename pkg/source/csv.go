package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// ReadCSV reads a delimited table with a header row.
// Blank header names become _c<index>; repeated names get their index appended.
func ReadCSV(r io.Reader, comma rune) (*dataset.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest, "dataset is empty, a header row is required")
	}
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to read dataset header", err)
	}

	names := headerNames(head)
	columns := make([][]string, len(names))

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to read dataset", err)
		}
		for i, cell := range rec {
			columns[i] = append(columns[i], cell)
		}
	}

	schema := make(dataset.Schema, len(names))
	typed := make([][]any, len(names))
	for i, name := range names {
		var t dataset.DataType
		t, typed[i] = typeColumn(columns[i])
		schema[i] = dataset.Field{Name: name, Type: t}
	}

	count := 0
	if len(columns) > 0 {
		count = len(columns[0])
	}
	rows := make([][]any, count)
	for r := range rows {
		row := make([]any, len(names))
		for c := range names {
			row[c] = typed[c][r]
		}
		rows[r] = row
	}

	return dataset.NewTable(schema, rows)
}

func headerNames(head []string) []string {
	names := make([]string, len(head))
	seen := make(map[string]int, len(head))
	for i, h := range head {
		name := normalizeName(h)
		if name == "" {
			name = "_c" + strconv.Itoa(i)
		}
		seen[name]++
		names[i] = name
	}
	for i, name := range names {
		if seen[name] > 1 {
			names[i] = fmt.Sprintf("%s%d", name, i)
		}
	}
	return names
}
