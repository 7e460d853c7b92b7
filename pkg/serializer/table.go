package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"
)

// marshalTable renders data as FIELD/VALUE rows. Nested fields are named by
// their path: "inputs.nullColumns[0]". Field names follow the JSON encoding.
func marshalTable(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}

	rows := make([][2]string, 0)
	flattenValue(&rows, "", generic)

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}
	return buf.Bytes(), nil
}

func flattenValue(rows *[][2]string, prefix string, v any) {
	switch x := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			name := k
			if prefix != "" {
				name = prefix + "." + k
			}
			flattenValue(rows, name, x[k])
		}
	case []any:
		for i, item := range x {
			flattenValue(rows, fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case nil:
		if prefix != "" {
			*rows = append(*rows, [2]string{prefix, ""})
		}
	default:
		*rows = append(*rows, [2]string{prefix, fmt.Sprint(x)})
	}
}
