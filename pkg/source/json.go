package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// ReadJSON reads JSON records: either a single array of objects or a stream
// of objects (JSON lines). Nested objects are flattened into dotted names,
// columns are sorted by name and a field absent from a record is nil.
func ReadJSON(r io.Reader) (*dataset.Table, error) {
	br := bufio.NewReader(r)
	dec := json.NewDecoder(br)
	dec.UseNumber()

	records := make([]map[string]any, 0)
	appendRecord := func(raw map[string]any) {
		records = append(records, dataset.Flatten(raw))
	}

	array, err := startsWithArray(br)
	if err != nil {
		return nil, err
	}

	if array {
		var raw []map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "invalid JSON dataset", err)
		}
		for _, rec := range raw {
			appendRecord(rec)
		}
	} else {
		for n := 1; ; n++ {
			var rec map[string]any
			err := dec.Decode(&rec)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("invalid JSON record %d", n), err)
			}
			appendRecord(rec)
		}
	}

	return recordsTable(records)
}

// startsWithArray peeks at the first non-space byte.
func startsWithArray(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.Peek(1)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to read dataset", err)
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return false, err
			}
		default:
			return b[0] == '[', nil
		}
	}
}

func recordsTable(records []map[string]any) (*dataset.Table, error) {
	nameSet := make(map[string]string)
	for _, rec := range records {
		for k := range rec {
			nameSet[normalizeName(k)] = k
		}
	}
	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	slices.Sort(names)

	schema := make(dataset.Schema, len(names))
	rows := make([][]any, len(records))
	for i := range rows {
		rows[i] = make([]any, len(names))
	}

	for c, name := range names {
		key := nameSet[name]
		values := make([]any, len(records))
		for r, rec := range records {
			values[r] = rec[key]
		}
		t, typed := typeJSONColumn(values)
		schema[c] = dataset.Field{Name: name, Type: t}
		for r := range records {
			rows[r][c] = typed[r]
		}
	}

	return dataset.NewTable(schema, rows)
}

// typeJSONColumn types decoded JSON values: bigint when every number is
// integral, double for other numbers, boolean, and string for text.
// Columns mixing kinds and lists become string, lists as JSON text.
func typeJSONColumn(values []any) (dataset.DataType, []any) {
	kinds := make(map[dataset.DataType]bool)
	for _, v := range values {
		switch x := v.(type) {
		case nil:
		case json.Number:
			if _, err := x.Int64(); err == nil {
				kinds[dataset.TypeBigInt] = true
			} else {
				kinds[dataset.TypeDouble] = true
			}
		case bool:
			kinds[dataset.TypeBoolean] = true
		default:
			kinds[dataset.TypeString] = true
		}
	}

	t := dataset.TypeString
	switch {
	case len(kinds) == 1 && kinds[dataset.TypeBigInt]:
		t = dataset.TypeBigInt
	case len(kinds) == 1 && kinds[dataset.TypeBoolean]:
		t = dataset.TypeBoolean
	case len(kinds) == 1 && kinds[dataset.TypeDouble],
		len(kinds) == 2 && kinds[dataset.TypeDouble] && kinds[dataset.TypeBigInt]:
		t = dataset.TypeDouble
	}

	typed := make([]any, len(values))
	for i, v := range values {
		typed[i] = convertJSON(t, v)
	}
	return t, typed
}

func convertJSON(t dataset.DataType, v any) any {
	if v == nil {
		return nil
	}
	switch t {
	case dataset.TypeBigInt:
		i, _ := v.(json.Number).Int64()
		return i
	case dataset.TypeDouble:
		f, _ := v.(json.Number).Float64()
		return f
	case dataset.TypeBoolean:
		return v
	}

	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
