package cache

import "github.com/vmihailenco/msgpack/v5"

// Snapshot returns a deep copy of v obtained through a msgpack round trip.
// Cached values are whole-result snapshots; handing out copies keeps a
// caller that appends to or rewrites a returned slice from mutating the
// entry that later reads will see.
//
// Values that msgpack cannot encode are returned as-is.
func Snapshot[T any](v T) T {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
