package cache

import (
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// KeyRegistry tracks the cache keys the read paths have filled, grouped by
// their relation prefix. It exists for the opt-in write-through
// invalidation hook: by default nothing ever consults it to delete keys,
// matching the fill-once, never-invalidate behavior of the read layer.
type KeyRegistry struct {
	keys *xsync.MapOf[string, struct{}]
}

// NewKeyRegistry creates an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{keys: xsync.NewMapOf[string, struct{}]()}
}

// Track records that key holds a cached value.
func (r *KeyRegistry) Track(key string) {
	r.keys.Store(key, struct{}{})
}

// Forget drops key from the registry.
func (r *KeyRegistry) Forget(key string) {
	r.keys.Delete(key)
}

// Matching returns every tracked key that starts with prefix.
func (r *KeyRegistry) Matching(prefix string) []string {
	var matched []string
	r.keys.Range(func(key string, _ struct{}) bool {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, key)
		}
		return true
	})
	return matched
}
