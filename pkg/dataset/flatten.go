package dataset

import (
	"maps"
	"slices"
)

// FlattenSeparator joins nested field names.
const FlattenSeparator = "."

// Flatten turns a nested record into a single level, naming nested leaves
// by their dotted path ("address.city"). Lists and scalars are leaves.
func Flatten(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	flattenInto(out, "", record)
	return out
}

// FlattenedKeys returns the dotted leaf names of record in a stable order:
// keys are sorted at every nesting level.
func FlattenedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	collectKeys(&keys, "", record)
	return keys
}

func flattenInto(out map[string]any, prefix string, record map[string]any) {
	for k, v := range record {
		name := prefix + k
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, name+FlattenSeparator, nested)
			continue
		}
		out[name] = v
	}
}

func collectKeys(keys *[]string, prefix string, record map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(record)) {
		name := prefix + k
		if nested, ok := record[k].(map[string]any); ok {
			collectKeys(keys, name+FlattenSeparator, nested)
			continue
		}
		*keys = append(*keys, name)
	}
}
