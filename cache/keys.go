package cache

import "strings"

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key builds a cache key from a fixed per-relation prefix and the
// request-derived identifiers. Keys are plain concatenations, not hashes:
// as long as ids are unique strings, collisions are ruled out by
// construction.
func Key(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + KeySeparator + strings.Join(parts, KeySeparator)
}
