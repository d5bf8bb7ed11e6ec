// Package cache defines the cache-aside contract the catalog's association
// and entity services read through, plus the key construction and snapshot
// rules cached values follow.
//
// The contract is deliberately small: Get, Set, GetOrFetch, Delete and
// DeleteByPrefix. Read paths use the generic GetOrFetch wrapper; a hit
// returns the cached snapshot without touching the entity store, so cached
// reads skip endpoint validation entirely. No read or write path deletes
// entries on its own; entries age out by TTL. The KeyRegistry exists so a
// deployment can opt into write-through invalidation without changing the
// read paths.
//
// Keys are fixed per-relation prefixes joined with request ids by "::".
// Values are whole-result snapshots (an entity or a list), detached from
// callers via a msgpack round trip.
package cache
