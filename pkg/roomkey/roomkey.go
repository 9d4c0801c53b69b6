package roomkey

import (
	"sort"
	"strings"
)

// Identities are email addresses, which contain characters that are illegal in
// store paths. Sanitize replaces them deterministically so the same email
// always yields the same key segment.
func Sanitize(identity string) string {
	s := strings.ReplaceAll(identity, ".", "_dot_")
	return strings.ReplaceAll(s, "@", "_at_")
}

// Derive returns the room id for a two-party conversation. The pair is
// sanitized, sorted lexicographically and joined, so Derive(a, b) == Derive(b, a).
func Derive(a, b string) string {
	pair := []string{Sanitize(a), Sanitize(b)}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}
