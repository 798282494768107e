// Package strings provides case-insensitive string helpers shared by stores
// and query predicates.
package strings

import (
	"strings"
)

// Fold trims whitespace and lowercases a value so it can be used as a
// case-insensitive index key.
//
// Example:
//
//	Fold("  Salma.Y@Example.com ")
//	// Returns: "salma.y@example.com"
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
// An empty needle always matches.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// EqualFold reports whether a and b are equal ignoring case and surrounding
// whitespace.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
