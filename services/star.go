package services

import (
	"context"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/model"
	"github.com/gastromap/catalog/storage"
)

const starCacheKey = "star"

// Star messages reused by the HTTP layer's tests.
const (
	MsgStarNotFound       = "star not found"
	MsgRestaurantFull     = "restaurant already holds three michelin stars"
	MsgRestaurantNotFound = "restaurant not found"
)

// Stars manages Michelin stars and the only cross-entity precondition in
// the catalog: a restaurant never exceeds model.MaxStars. The cap is
// checked against the committed star count on award only; updates and
// deletes leave it alone.
type Stars struct {
	stars       storage.Store[model.Star]
	restaurants storage.Store[model.Restaurant]
	cache       cache.CacheService
	registry    *cache.KeyRegistry
	invalidate  Invalidator
}

// NewStars wires the star service. invalidate may be nil.
func NewStars(
	stars storage.Store[model.Star],
	restaurants storage.Store[model.Restaurant],
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Stars {
	if invalidate == nil {
		invalidate = NoInvalidation()
	}
	return &Stars{
		stars:       stars,
		restaurants: restaurants,
		cache:       cacheService,
		registry:    registry,
		invalidate:  invalidate,
	}
}

// FindAll lists every star, reading through the cache under a fixed key.
func (s *Stars) FindAll(ctx context.Context) ([]*model.Star, error) {
	key := cache.Key(starCacheKey)
	stars, err := cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]*model.Star, error) {
		return s.stars.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	s.registry.Track(key)
	return stars, nil
}

// FindAllByRestaurant lists the stars held by one restaurant.
func (s *Stars) FindAllByRestaurant(ctx context.Context, restaurantID string) ([]*model.Star, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return restaurant.Stars, nil
}

// FindOne returns one star with its restaurant loaded.
func (s *Stars) FindOne(ctx context.Context, id string) (*model.Star, error) {
	star, err := s.stars.FindByID(ctx, id, storage.WithRelations("Restaurant"))
	if err != nil {
		return nil, err
	}
	if star == nil {
		return nil, errs.NotFound(MsgStarNotFound)
	}
	return star, nil
}

// Create awards a star to restaurantID. A restaurant already holding
// model.MaxStars stars fails the precondition.
func (s *Stars) Create(ctx context.Context, restaurantID string, star *model.Star) (*model.Star, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(restaurant.Stars) >= model.MaxStars {
		return nil, errs.PreconditionFailed(MsgRestaurantFull)
	}

	star.RestaurantID = &restaurant.ID
	if err := star.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.stars.Save(ctx, star)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(starCacheKey)); err != nil {
		return nil, err
	}
	return saved, nil
}

// Update merges patch into the persisted star. The restaurant is
// validated independently of the star; a star is only addressable through
// a restaurant that exists. The star cap is not re-checked: updating a
// star never changes how many a restaurant holds.
func (s *Stars) Update(ctx context.Context, restaurantID, id string, patch *model.Star) (*model.Star, error) {
	if _, err := s.loadRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	existing, err := s.stars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound(MsgStarNotFound)
	}

	if !patch.ConsecutionDate.IsZero() {
		existing.ConsecutionDate = patch.ConsecutionDate
	}
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.stars.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate.OnWrite(ctx, cache.Key(starCacheKey)); err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete revokes a star, validating the restaurant first. The freed slot
// makes the restaurant awardable again.
func (s *Stars) Delete(ctx context.Context, restaurantID, id string) error {
	if _, err := s.loadRestaurant(ctx, restaurantID); err != nil {
		return err
	}

	existing, err := s.stars.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.NotFound(MsgStarNotFound)
	}
	if err := s.stars.Remove(ctx, existing); err != nil {
		return err
	}
	return s.invalidate.OnWrite(ctx, cache.Key(starCacheKey))
}

func (s *Stars) loadRestaurant(ctx context.Context, restaurantID string) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID, storage.WithRelations("Stars"))
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, errs.NotFound(MsgRestaurantNotFound)
	}
	return restaurant, nil
}
