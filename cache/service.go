package cache

import "context"

// FetchFn is the function signature CacheService expects when falling back
// to the source of truth on a miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService is the cache-aside contract the catalog services program
// against. A hit on GetOrFetch short-circuits the fetch entirely, which is
// what lets cached read paths skip endpoint validation.
type CacheService interface {
	// Get returns the cached value for key, if any.
	Get(ctx context.Context, key string) (any, bool)
	// Set stores a value under key with the service's default TTL.
	Set(ctx context.Context, key string, value any)
	// GetOrFetch returns the cached value for key or invokes fetchFn,
	// caching and returning its result. fetchFn must be a FetchFn[T].
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch. The
// returned value is a detached snapshot, so callers mutating the result
// cannot corrupt the cached copy.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		var zero T
		return zero, err
	}
	return Snapshot(result.(T)), nil
}

// Get is the type-safe wrapper over CacheService.Get.
func Get[T any](ctx context.Context, service CacheService, key string) (T, bool) {
	value, ok := service.Get(ctx, key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return Snapshot(typed), true
}
