package services

import (
	"context"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/storage"
)

// Kind describes one entity kind for the generic CRUD service.
type Kind[T any] struct {
	// CacheKey is the fixed key FindAll results are cached under.
	CacheKey string
	// NotFound is the message for lookups of absent ids.
	NotFound string
	// FindOneRelations are the relations FindOne loads eagerly.
	FindOneRelations []string
	Validate         func(*T) error
	// Merge copies the set fields of patch onto the persisted record.
	Merge func(existing, patch *T)
}

// Entity is the CRUD service shared by every catalog kind. Listing reads
// through the cache under a fixed key; single lookups always go to the
// store so they reflect relations loaded on demand. Writes go straight to
// the store and, by default, leave cached listings stale until TTL.
type Entity[T any] struct {
	store      storage.Store[T]
	cache      cache.CacheService
	registry   *cache.KeyRegistry
	invalidate Invalidator
	kind       Kind[T]
}

// NewEntity wires a CRUD service for one kind. invalidate may be nil.
func NewEntity[T any](
	store storage.Store[T],
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
	kind Kind[T],
) *Entity[T] {
	if invalidate == nil {
		invalidate = NoInvalidation()
	}
	return &Entity[T]{
		store:      store,
		cache:      cacheService,
		registry:   registry,
		invalidate: invalidate,
		kind:       kind,
	}
}

// FindAll lists every record of the kind through the cache.
func (s *Entity[T]) FindAll(ctx context.Context) ([]*T, error) {
	key := cache.Key(s.kind.CacheKey)
	records, err := cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]*T, error) {
		return s.store.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	s.registry.Track(key)
	return records, nil
}

// FindOne returns one record with the kind's relations loaded, bypassing
// the cache.
func (s *Entity[T]) FindOne(ctx context.Context, id string) (*T, error) {
	record, err := s.store.FindByID(ctx, id, storage.WithRelations(s.kind.FindOneRelations...))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errs.NotFound(s.kind.NotFound)
	}
	return record, nil
}

// Create validates and persists a new record.
func (s *Entity[T]) Create(ctx context.Context, record *T) (*T, error) {
	if err := s.kind.Validate(record); err != nil {
		return nil, err
	}
	saved, err := s.store.Save(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.kind.CacheKey)); err != nil {
		return nil, err
	}
	return saved, nil
}

// Update merges patch onto the persisted record and saves the result.
func (s *Entity[T]) Update(ctx context.Context, id string, patch *T) (*T, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound(s.kind.NotFound)
	}

	s.kind.Merge(existing, patch)
	if err := s.kind.Validate(existing); err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.kind.CacheKey)); err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes one record. Rows referencing it through join tables or
// foreign keys are not touched, so stale associations surface later as
// precondition failures, not cascades.
func (s *Entity[T]) Delete(ctx context.Context, id string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.NotFound(s.kind.NotFound)
	}
	if err := s.store.Remove(ctx, existing); err != nil {
		return err
	}
	return s.invalidate.OnWrite(ctx, cache.Key(s.kind.CacheKey))
}
