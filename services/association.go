package services

import (
	"context"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/storage"
)

// Relation describes one parent->children pair for the generic association
// service: the cache prefix, the bun relation to load on the parent, the
// accessors the generic code cannot derive, and the failure messages.
type Relation[P, C any] struct {
	// Name is the cache key prefix for this relation, e.g. "culture-country".
	Name string
	// LoadRelation is the bun relation name that populates Collection.
	LoadRelation string
	Collection   func(*P) []*C
	ChildID      func(*C) string

	ParentNotFound string
	ChildNotFound  string
	NotAssociated  string

	// CacheFind additionally caches single-child lookups under
	// Name::parentID::childID.
	CacheFind bool
}

// Association serves one many-to-many or has-many relation: listing and
// looking up children through the cache, attaching and detaching edges
// through the edge store. Reads that hit the cache never touch the entity
// store, so they skip endpoint validation; writes never invalidate unless
// the configured Invalidator does.
type Association[P, C any] struct {
	parents    storage.Store[P]
	children   storage.Store[C]
	edges      storage.EdgeStore
	cache      cache.CacheService
	registry   *cache.KeyRegistry
	invalidate Invalidator
	rel        Relation[P, C]
}

// NewAssociation wires an association service. invalidate may be nil, in
// which case writes leave the cache alone.
func NewAssociation[P, C any](
	parents storage.Store[P],
	children storage.Store[C],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
	rel Relation[P, C],
) *Association[P, C] {
	if invalidate == nil {
		invalidate = NoInvalidation()
	}
	return &Association[P, C]{
		parents:    parents,
		children:   children,
		edges:      edges,
		cache:      cacheService,
		registry:   registry,
		invalidate: invalidate,
		rel:        rel,
	}
}

// Add associates childID with parentID and returns the parent with the
// relation collection reloaded. The child is validated before the parent.
// Attaching an already-present edge is a no-op and still succeeds.
func (s *Association[P, C]) Add(ctx context.Context, parentID, childID string) (*P, error) {
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, errs.NotFound(s.rel.ChildNotFound)
	}

	parent, err := s.parents.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, errs.NotFound(s.rel.ParentNotFound)
	}

	if err := s.edges.Attach(ctx, parentID, childID); err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.rel.Name, parentID)); err != nil {
		return nil, err
	}
	return s.loadWithChildren(ctx, parentID)
}

// FindAll returns the children associated with parentID, reading through
// the cache under Name::parentID. On a hit the parent is not validated.
func (s *Association[P, C]) FindAll(ctx context.Context, parentID string) ([]*C, error) {
	key := cache.Key(s.rel.Name, parentID)
	children, err := cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]*C, error) {
		parent, err := s.loadWithChildren(ctx, parentID)
		if err != nil {
			return nil, err
		}
		return s.rel.Collection(parent), nil
	})
	if err != nil {
		return nil, err
	}
	s.registry.Track(key)
	return children, nil
}

// Find returns the single child childID associated with parentID. Both
// endpoints must exist and the edge must be present, otherwise the lookup
// fails with a precondition error. Relations configured with CacheFind read
// through the cache under Name::parentID::childID.
func (s *Association[P, C]) Find(ctx context.Context, parentID, childID string) (*C, error) {
	if !s.rel.CacheFind {
		return s.findUncached(ctx, parentID, childID)
	}

	key := cache.Key(s.rel.Name, parentID, childID)
	child, err := cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (*C, error) {
		return s.findUncached(ctx, parentID, childID)
	})
	if err != nil {
		return nil, err
	}
	s.registry.Track(key)
	return child, nil
}

// Remove detaches childID from parentID and returns the parent with the
// relation collection reloaded. Removing an edge that is not present fails
// with a precondition error.
func (s *Association[P, C]) Remove(ctx context.Context, parentID, childID string) (*P, error) {
	if _, err := s.findUncached(ctx, parentID, childID); err != nil {
		return nil, err
	}

	if err := s.edges.Detach(ctx, parentID, childID); err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(s.rel.Name, parentID)); err != nil {
		return nil, err
	}
	return s.loadWithChildren(ctx, parentID)
}

// Replace makes childIDs the exact child set of parentID: missing edges are
// attached, edges outside the set are detached. Every child must exist.
func (s *Association[P, C]) Replace(ctx context.Context, parentID string, childIDs []string) (*P, error) {
	for _, childID := range childIDs {
		child, err := s.children.FindByID(ctx, childID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, errs.NotFound(s.rel.ChildNotFound)
		}
	}

	parent, err := s.loadWithChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(childIDs))
	for _, id := range childIDs {
		wanted[id] = true
	}
	for _, current := range s.rel.Collection(parent) {
		id := s.rel.ChildID(current)
		if wanted[id] {
			delete(wanted, id)
			continue
		}
		if err := s.edges.Detach(ctx, parentID, id); err != nil {
			return nil, err
		}
	}
	for id := range wanted {
		if err := s.edges.Attach(ctx, parentID, id); err != nil {
			return nil, err
		}
	}

	if err := s.invalidate.OnWrite(ctx, cache.Key(s.rel.Name, parentID)); err != nil {
		return nil, err
	}
	return s.loadWithChildren(ctx, parentID)
}

func (s *Association[P, C]) findUncached(ctx context.Context, parentID, childID string) (*C, error) {
	parent, err := s.loadWithChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, errs.NotFound(s.rel.ChildNotFound)
	}

	for _, associated := range s.rel.Collection(parent) {
		if s.rel.ChildID(associated) == childID {
			return associated, nil
		}
	}
	return nil, errs.PreconditionFailed(s.rel.NotAssociated)
}

func (s *Association[P, C]) loadWithChildren(ctx context.Context, parentID string) (*P, error) {
	parent, err := s.parents.FindByID(ctx, parentID, storage.WithRelations(s.rel.LoadRelation))
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, errs.NotFound(s.rel.ParentNotFound)
	}
	return parent, nil
}
