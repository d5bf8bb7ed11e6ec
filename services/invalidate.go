// Package services implements the catalog's association, star and entity
// services: endpoint validation, typed failures, relation mutation through
// edge stores, and cache-aside reads that are filled once and left to age
// out.
package services

import (
	"context"

	"github.com/gastromap/catalog/cache"
)

// Invalidator is the write hook the services call after every mutation.
// The default does nothing: cached reads stay stale until their TTL
// expires, and that staleness is part of the service contract. Deployments
// that want read-your-writes swap in NewCacheInvalidator.
type Invalidator interface {
	// OnWrite is called with the key prefix a mutation may have staled.
	OnWrite(ctx context.Context, prefix string) error
}

type noopInvalidator struct{}

func (noopInvalidator) OnWrite(context.Context, string) error { return nil }

// NoInvalidation returns the default hook that leaves the cache untouched.
func NoInvalidation() Invalidator {
	return noopInvalidator{}
}

type cacheInvalidator struct {
	cache    cache.CacheService
	registry *cache.KeyRegistry
}

// NewCacheInvalidator returns a hook that deletes every tracked key under
// the written prefix.
func NewCacheInvalidator(service cache.CacheService, registry *cache.KeyRegistry) Invalidator {
	return &cacheInvalidator{cache: service, registry: registry}
}

func (i *cacheInvalidator) OnWrite(ctx context.Context, prefix string) error {
	for _, key := range i.registry.Matching(prefix) {
		if err := i.cache.Delete(ctx, key); err != nil {
			return err
		}
		i.registry.Forget(key)
	}
	return nil
}
