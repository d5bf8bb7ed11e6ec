package services

import (
	"context"
	"testing"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/model"
)

type restaurantCountryFixture struct {
	restaurants *mockStore[model.Restaurant]
	countries   *mockStore[model.Country]
	edges       *mockEdges
	cache       cache.CacheService
	registry    *cache.KeyRegistry
}

// The mock edge store is keyed parent=country, child=restaurant, matching
// the direction of the foreign key.
func newRestaurantCountryFixture(t *testing.T) *restaurantCountryFixture {
	t.Helper()
	f := &restaurantCountryFixture{
		restaurants: newMockStore(
			func(r *model.Restaurant) string { return r.ID },
			func(r *model.Restaurant, id string) { r.ID = id },
		),
		countries: newMockStore(
			func(c *model.Country) string { return c.ID },
			func(c *model.Country, id string) { c.ID = id },
		),
		edges:    newMockEdges(),
		cache:    newTestCache(t),
		registry: cache.NewKeyRegistry(),
	}
	f.restaurants.loadRelations = func(r *model.Restaurant) {
		r.CountryID = nil
		r.Country = nil
		for countryID, children := range f.edges.edges {
			if children[r.ID] {
				id := countryID
				r.CountryID = &id
				r.Country, _ = f.countries.FindByID(context.Background(), id)
			}
		}
	}
	f.restaurants.put(&model.Restaurant{ID: "rs-1", Name: "Pujol", City: "Mexico City"})
	f.countries.put(&model.Country{ID: "co-1", Name: "Mexico"})
	f.countries.put(&model.Country{ID: "co-2", Name: "Peru"})
	return f
}

func (f *restaurantCountryFixture) service(invalidate Invalidator) *BelongsTo[model.Restaurant, model.Country] {
	return NewRestaurantCountry(f.restaurants, f.countries, f.edges, f.cache, f.registry, invalidate)
}

func TestAssociateCountryRoundTrip(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)
	ctx := context.Background()

	restaurant, err := svc.Associate(ctx, "rs-1", "co-1")
	if err != nil {
		t.Fatalf("Associate failed: %v", err)
	}
	if restaurant.CountryID == nil || *restaurant.CountryID != "co-1" {
		t.Errorf("Associate did not set the country: %+v", restaurant)
	}

	country, err := svc.FindTarget(ctx, "rs-1")
	if err != nil {
		t.Fatalf("FindTarget failed: %v", err)
	}
	if country.Name != "Mexico" {
		t.Errorf("FindTarget returned wrong country: %+v", country)
	}
}

func TestAssociateMissingCountry(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)

	_, err := svc.Associate(context.Background(), "rs-1", "co-missing")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssociateMissingRestaurant(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)

	_, err := svc.Associate(context.Background(), "rs-missing", "co-1")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != MsgRestaurantNotFound {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFindTargetWithoutAssociation(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)

	_, err := svc.FindTarget(context.Background(), "rs-1")
	if !errs.IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failed, got %v", err)
	}
}

func TestRemoveWrongCountry(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)
	ctx := context.Background()

	if _, err := svc.Associate(ctx, "rs-1", "co-1"); err != nil {
		t.Fatalf("Associate failed: %v", err)
	}
	_, err := svc.Remove(ctx, "rs-1", "co-2")
	if !errs.IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failed, got %v", err)
	}
}

func TestRemoveClearsCountry(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)
	ctx := context.Background()

	if _, err := svc.Associate(ctx, "rs-1", "co-1"); err != nil {
		t.Fatalf("Associate failed: %v", err)
	}
	restaurant, err := svc.Remove(ctx, "rs-1", "co-1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if restaurant.CountryID != nil {
		t.Errorf("Remove left the country set: %+v", restaurant)
	}
}

// FindTarget is cached: once filled, re-pointing the restaurant at another
// country keeps serving the old one until TTL.
func TestFindTargetServesStaleCountry(t *testing.T) {
	f := newRestaurantCountryFixture(t)
	svc := f.service(nil)
	ctx := context.Background()

	if _, err := svc.Associate(ctx, "rs-1", "co-1"); err != nil {
		t.Fatalf("Associate failed: %v", err)
	}
	if _, err := svc.FindTarget(ctx, "rs-1"); err != nil {
		t.Fatalf("warm-up FindTarget failed: %v", err)
	}

	if _, err := svc.Associate(ctx, "rs-1", "co-2"); err != nil {
		t.Fatalf("re-associate failed: %v", err)
	}

	country, err := svc.FindTarget(ctx, "rs-1")
	if err != nil {
		t.Fatalf("FindTarget failed: %v", err)
	}
	if country.ID != "co-1" {
		t.Errorf("expected stale country co-1, got %s", country.ID)
	}
}

func TestProductCategoryAssociation(t *testing.T) {
	products := newMockStore(
		func(p *model.Product) string { return p.ID },
		func(p *model.Product, id string) { p.ID = id },
	)
	categories := newMockStore(
		func(c *model.Category) string { return c.ID },
		func(c *model.Category, id string) { c.ID = id },
	)
	edges := newMockEdges()
	products.loadRelations = func(p *model.Product) {
		p.CategoryID = nil
		p.Category = nil
		for categoryID, children := range edges.edges {
			if children[p.ID] {
				id := categoryID
				p.CategoryID = &id
				p.Category, _ = categories.FindByID(context.Background(), id)
			}
		}
	}
	products.put(&model.Product{ID: "pr-1", Name: "Mole", Description: "Sauce", History: "Pre-hispanic"})
	categories.put(&model.Category{ID: "ca-1", Name: "Sauces"})

	svc := NewProductCategory(products, categories, edges, newTestCache(t), cache.NewKeyRegistry(), nil)
	ctx := context.Background()

	if _, err := svc.FindTarget(ctx, "pr-1"); !errs.IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failed before Associate, got %v", err)
	}

	if _, err := svc.Associate(ctx, "pr-1", "ca-1"); err != nil {
		t.Fatalf("Associate failed: %v", err)
	}

	category, err := svc.FindTarget(ctx, "pr-1")
	if err != nil {
		t.Fatalf("FindTarget failed: %v", err)
	}
	if category.Name != "Sauces" {
		t.Errorf("FindTarget returned wrong category: %+v", category)
	}
}
