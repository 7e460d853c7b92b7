package dataset

import "strings"

// MatchColumns returns the names that match at least one of the patterns,
// preserving the order of names.
// Supports wildcard patterns:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
func MatchColumns(names []string, patterns []string) []string {
	matched := make([]string, 0)

	for _, name := range names {
		for _, pattern := range patterns {
			if MatchPattern(name, pattern) {
				matched = append(matched, name)
				break
			}
		}
	}

	return matched
}

// MatchPattern checks if a column name matches a wildcard pattern.
func MatchPattern(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// *infix* - contains match
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(name, strings.Trim(pattern, "*"))
	}

	// *suffix - ends with match
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(name, strings.TrimPrefix(pattern, "*"))
	}

	// prefix* - starts with match
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}

	return false
}
