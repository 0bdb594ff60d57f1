// Package spaces holds the pure pieces of the space lifecycle: the mapping
// between a space's stored name and its public URL slug.
package spaces

import "strings"

// Slug derives the public URL slug for a space name: lowercased, spaces
// replaced with hyphens. "My Cool Space" -> "my-cool-space".
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// NameFromSlug inverts Slug back to the stored name form: hyphens become
// spaces, lowercased. Names are normalized to lowercase on write, so the
// result matches by exact lookup.
func NameFromSlug(slug string) string {
	return strings.ToLower(strings.ReplaceAll(slug, "-", " "))
}

// NormalizeName is applied before a name is persisted, keeping the
// Slug/NameFromSlug pair a true inverse.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}
