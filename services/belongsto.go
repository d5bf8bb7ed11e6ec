package services

import (
	"context"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/storage"
)

// TargetRelation describes a belongs-to pair where the owner row carries a
// nullable foreign key to a single target: restaurant->country,
// product->category.
type TargetRelation[O, T any] struct {
	// Name is the cache key prefix, e.g. "restaurant-country".
	Name string
	// LoadRelation is the bun relation that populates Target.
	LoadRelation string
	TargetID     func(*O) *string
	Target       func(*O) *T

	OwnerNotFound  string
	TargetNotFound string
	NotAssociated  string

	// CacheFind caches FindTarget results under Name::ownerID.
	CacheFind bool
}

// BelongsTo serves one belongs-to relation. Associate repoints the foreign
// key, replacing any previous target; FindTarget optionally reads through
// the cache.
type BelongsTo[O, T any] struct {
	owners     storage.Store[O]
	targets    storage.Store[T]
	edges      storage.EdgeStore
	cache      cache.CacheService
	registry   *cache.KeyRegistry
	invalidate Invalidator
	rel        TargetRelation[O, T]
}

// NewBelongsTo wires a belongs-to service. invalidate may be nil.
func NewBelongsTo[O, T any](
	owners storage.Store[O],
	targets storage.Store[T],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
	rel TargetRelation[O, T],
) *BelongsTo[O, T] {
	if invalidate == nil {
		invalidate = NoInvalidation()
	}
	return &BelongsTo[O, T]{
		owners:     owners,
		targets:    targets,
		edges:      edges,
		cache:      cacheService,
		registry:   registry,
		invalidate: invalidate,
		rel:        rel,
	}
}

// Associate points ownerID at targetID and returns the owner with the
// target loaded. Any previously associated target is replaced.
func (s *BelongsTo[O, T]) Associate(ctx context.Context, ownerID, targetID string) (*O, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errs.NotFound(s.rel.OwnerNotFound)
	}

	target, err := s.targets.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errs.NotFound(s.rel.TargetNotFound)
	}

	if err := s.edges.Attach(ctx, targetID, ownerID); err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.rel.Name, ownerID)); err != nil {
		return nil, err
	}
	return s.loadOwner(ctx, ownerID)
}

// FindTarget returns the target associated with ownerID. An owner without
// a target fails with a precondition error.
func (s *BelongsTo[O, T]) FindTarget(ctx context.Context, ownerID string) (*T, error) {
	if !s.rel.CacheFind {
		return s.findUncached(ctx, ownerID)
	}

	key := cache.Key(s.rel.Name, ownerID)
	target, err := cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (*T, error) {
		return s.findUncached(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	s.registry.Track(key)
	return target, nil
}

// Remove clears the association between ownerID and targetID and returns
// the owner. Removing a target the owner is not pointing at fails with a
// precondition error.
func (s *BelongsTo[O, T]) Remove(ctx context.Context, ownerID, targetID string) (*O, error) {
	owner, err := s.loadOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	target, err := s.targets.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errs.NotFound(s.rel.TargetNotFound)
	}

	current := s.rel.TargetID(owner)
	if current == nil || *current != targetID {
		return nil, errs.PreconditionFailed(s.rel.NotAssociated)
	}

	if err := s.edges.Detach(ctx, targetID, ownerID); err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.rel.Name, ownerID)); err != nil {
		return nil, err
	}
	return s.loadOwner(ctx, ownerID)
}

func (s *BelongsTo[O, T]) findUncached(ctx context.Context, ownerID string) (*T, error) {
	owner, err := s.loadOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if s.rel.TargetID(owner) == nil {
		return nil, errs.PreconditionFailed(s.rel.NotAssociated)
	}
	return s.rel.Target(owner), nil
}

func (s *BelongsTo[O, T]) loadOwner(ctx context.Context, ownerID string) (*O, error) {
	owner, err := s.owners.FindByID(ctx, ownerID, storage.WithRelations(s.rel.LoadRelation))
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errs.NotFound(s.rel.OwnerNotFound)
	}
	return owner, nil
}
