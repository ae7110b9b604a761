// Package slug turns catalog names into URL path segments.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	symbolWord = strings.NewReplacer("&", " and ", "+", " plus ", "@", " at ")
)

// Generate creates a URL-friendly slug from the given name.
//
// Examples:
//   - "UI Kits" → "ui-kits"
//   - "Design & Development" → "design-and-development"
//   - "C++ Course" → "c-plus-plus-course"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = symbolWord.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Match reports whether name slugifies to s. Used to resolve a category
// path segment back to its display name.
func Match(name, s string) bool {
	return Generate(name) == strings.ToLower(s)
}
