// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitLines splits textarea input into one entry per line, then trims,
// drops blank lines and removes duplicates. CRLF line endings are handled.
//
// Example:
//
//	SplitLines("a\r\nb\n\nc")
//	// Returns: []string{"a", "b", "c"}
func SplitLines(text string) []string {
	return DedupeAndTrim(strings.Split(text, "\n"))
}

// SplitList splits comma separated input, then trims, drops blanks and
// removes duplicates.
//
// Example:
//
//	SplitList("openid, email,,email")
//	// Returns: []string{"openid", "email"}
func SplitList(text string) []string {
	return DedupeAndTrim(strings.Split(text, ","))
}
