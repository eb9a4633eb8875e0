// Package normalize canonicalizes user-supplied identity fields before
// they are stored or used as lookup keys.
package normalize

import "strings"

// Email canonicalizes an email address for use as the uniqueness key:
// surrounding whitespace is trimmed and the whole address lowercased.
// "Ada@Example.COM " and "ada@example.com" upsert the same record.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses internal whitespace runs to a
// single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
