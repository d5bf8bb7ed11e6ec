package cache

import (
	"time"

	"github.com/gastromap/catalog/internal/cacheinfra"
)

// Config exposes cache tuning options to consumers of the cache package.
type Config struct {
	// Capacity is the maximum number of entries the cache can hold.
	Capacity int
	// NumShards controls how many shards back the cache for concurrent
	// access.
	NumShards int
	// TTL is the default time-to-live for cached entries.
	TTL time.Duration
	// EvictionPercentage is how much of the cache is evicted when capacity
	// is reached, between 1 and 100.
	EvictionPercentage int
	// EvictionInterval sets how often expired entries are collected. Zero
	// uses the backend default.
	EvictionInterval time.Duration
}

// DefaultConfig returns the defaults the catalog runs with: a five minute
// TTL over ten thousand entries.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the default sturdyc-backed cache service.
func NewCacheService(cfg Config) (CacheService, error) {
	return cacheinfra.NewSturdycService(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
