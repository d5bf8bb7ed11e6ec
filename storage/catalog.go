package storage

import (
	"github.com/uptrace/bun"

	"github.com/gastromap/catalog/model"
)

// Per-kind store constructors. Each wires the generic bun store with the
// model's accessors.

func Cultures(db *bun.DB) Store[model.Culture] {
	return NewStore(db, ModelHandlers[model.Culture]{
		NewRecord: func() *model.Culture { return &model.Culture{} },
		GetID:     func(c *model.Culture) string { return c.ID },
		SetID:     func(c *model.Culture, id string) { c.ID = id },
	})
}

func Countries(db *bun.DB) Store[model.Country] {
	return NewStore(db, ModelHandlers[model.Country]{
		NewRecord: func() *model.Country { return &model.Country{} },
		GetID:     func(c *model.Country) string { return c.ID },
		SetID:     func(c *model.Country, id string) { c.ID = id },
	})
}

func Categories(db *bun.DB) Store[model.Category] {
	return NewStore(db, ModelHandlers[model.Category]{
		NewRecord: func() *model.Category { return &model.Category{} },
		GetID:     func(c *model.Category) string { return c.ID },
		SetID:     func(c *model.Category, id string) { c.ID = id },
	})
}

func Products(db *bun.DB) Store[model.Product] {
	return NewStore(db, ModelHandlers[model.Product]{
		NewRecord: func() *model.Product { return &model.Product{} },
		GetID:     func(p *model.Product) string { return p.ID },
		SetID:     func(p *model.Product, id string) { p.ID = id },
	})
}

func Recipes(db *bun.DB) Store[model.Recipe] {
	return NewStore(db, ModelHandlers[model.Recipe]{
		NewRecord: func() *model.Recipe { return &model.Recipe{} },
		GetID:     func(r *model.Recipe) string { return r.ID },
		SetID:     func(r *model.Recipe, id string) { r.ID = id },
	})
}

func Restaurants(db *bun.DB) Store[model.Restaurant] {
	return NewStore(db, ModelHandlers[model.Restaurant]{
		NewRecord: func() *model.Restaurant { return &model.Restaurant{} },
		GetID:     func(r *model.Restaurant) string { return r.ID },
		SetID:     func(r *model.Restaurant, id string) { r.ID = id },
	})
}

func Stars(db *bun.DB) Store[model.Star] {
	return NewStore(db, ModelHandlers[model.Star]{
		NewRecord: func() *model.Star { return &model.Star{} },
		GetID:     func(s *model.Star) string { return s.ID },
		SetID:     func(s *model.Star, id string) { s.ID = id },
	})
}

// Edge store constructors, one per relation pair.

func CultureCountryEdges(db *bun.DB) EdgeStore {
	return NewJoinEdges(db, "culture_id", "country_id", func(parentID, childID string) *model.CultureCountry {
		return &model.CultureCountry{CultureID: parentID, CountryID: childID}
	})
}

// CountryCultureEdges addresses the same edge set as CultureCountryEdges
// with the endpoint roles swapped, for the country-side view.
func CountryCultureEdges(db *bun.DB) EdgeStore {
	return NewJoinEdges(db, "country_id", "culture_id", func(parentID, childID string) *model.CultureCountry {
		return &model.CultureCountry{CountryID: parentID, CultureID: childID}
	})
}

func CultureRestaurantEdges(db *bun.DB) EdgeStore {
	return NewJoinEdges(db, "culture_id", "restaurant_id", func(parentID, childID string) *model.CultureRestaurant {
		return &model.CultureRestaurant{CultureID: parentID, RestaurantID: childID}
	})
}

func CultureProductEdges(db *bun.DB) EdgeStore {
	return NewFKEdges[model.Product](db, "culture_id")
}

func CultureRecipeEdges(db *bun.DB) EdgeStore {
	return NewFKEdges[model.Recipe](db, "culture_id")
}

func RestaurantCountryEdges(db *bun.DB) EdgeStore {
	return NewFKEdges[model.Restaurant](db, "country_id")
}

func ProductCategoryEdges(db *bun.DB) EdgeStore {
	return NewFKEdges[model.Product](db, "category_id")
}
