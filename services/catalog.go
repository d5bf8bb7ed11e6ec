package services

import (
	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/model"
	"github.com/gastromap/catalog/storage"
)

// Entity lookup messages shared with the HTTP layer.
const (
	MsgCultureNotFound  = "culture not found"
	MsgCountryNotFound  = "country not found"
	MsgProductNotFound  = "product not found"
	MsgCategoryNotFound = "category not found"
	MsgRecipeNotFound   = "recipe not found"
)

// NewCultureCountries serves the symmetric culture<->country relation from
// the culture side.
func NewCultureCountries(
	cultures storage.Store[model.Culture],
	countries storage.Store[model.Country],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Association[model.Culture, model.Country] {
	return NewAssociation(cultures, countries, edges, cacheService, registry, invalidate,
		Relation[model.Culture, model.Country]{
			Name:           "culture-country",
			LoadRelation:   "Countries",
			Collection:     func(c *model.Culture) []*model.Country { return c.Countries },
			ChildID:        func(c *model.Country) string { return c.ID },
			ParentNotFound: MsgCultureNotFound,
			ChildNotFound:  MsgCountryNotFound,
			NotAssociated:  "country is not associated with the culture",
		})
}

// NewCountryCultures is the same relation read from the country side. Both
// views share the edge set, so an association added on one side is visible
// from the other.
func NewCountryCultures(
	countries storage.Store[model.Country],
	cultures storage.Store[model.Culture],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Association[model.Country, model.Culture] {
	return NewAssociation(countries, cultures, edges, cacheService, registry, invalidate,
		Relation[model.Country, model.Culture]{
			Name:           "country-culture",
			LoadRelation:   "Cultures",
			Collection:     func(c *model.Country) []*model.Culture { return c.Cultures },
			ChildID:        func(c *model.Culture) string { return c.ID },
			ParentNotFound: MsgCountryNotFound,
			ChildNotFound:  MsgCultureNotFound,
			NotAssociated:  "culture is not associated with the country",
		})
}

// NewCultureProducts serves the culture->product relation, stored as the
// product's culture foreign key.
func NewCultureProducts(
	cultures storage.Store[model.Culture],
	products storage.Store[model.Product],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Association[model.Culture, model.Product] {
	return NewAssociation(cultures, products, edges, cacheService, registry, invalidate,
		Relation[model.Culture, model.Product]{
			Name:           "culture-product",
			LoadRelation:   "Products",
			Collection:     func(c *model.Culture) []*model.Product { return c.Products },
			ChildID:        func(p *model.Product) string { return p.ID },
			ParentNotFound: MsgCultureNotFound,
			ChildNotFound:  MsgProductNotFound,
			NotAssociated:  "product is not associated with the culture",
		})
}

// NewCultureRecipes serves the culture->recipe relation. Single-recipe
// lookups read through the cache.
func NewCultureRecipes(
	cultures storage.Store[model.Culture],
	recipes storage.Store[model.Recipe],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Association[model.Culture, model.Recipe] {
	return NewAssociation(cultures, recipes, edges, cacheService, registry, invalidate,
		Relation[model.Culture, model.Recipe]{
			Name:           "culture-recipe",
			LoadRelation:   "Recipes",
			Collection:     func(c *model.Culture) []*model.Recipe { return c.Recipes },
			ChildID:        func(r *model.Recipe) string { return r.ID },
			ParentNotFound: MsgCultureNotFound,
			ChildNotFound:  MsgRecipeNotFound,
			NotAssociated:  "recipe is not associated with the culture",
			CacheFind:      true,
		})
}

// NewCultureRestaurants serves the culture<->restaurant relation from the
// culture side.
func NewCultureRestaurants(
	cultures storage.Store[model.Culture],
	restaurants storage.Store[model.Restaurant],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *Association[model.Culture, model.Restaurant] {
	return NewAssociation(cultures, restaurants, edges, cacheService, registry, invalidate,
		Relation[model.Culture, model.Restaurant]{
			Name:           "culture-restaurant",
			LoadRelation:   "Restaurants",
			Collection:     func(c *model.Culture) []*model.Restaurant { return c.Restaurants },
			ChildID:        func(r *model.Restaurant) string { return r.ID },
			ParentNotFound: MsgCultureNotFound,
			ChildNotFound:  MsgRestaurantNotFound,
			NotAssociated:  "restaurant is not associated with the culture",
		})
}

// NewRestaurantCountry serves the restaurant->country belongs-to relation.
// Country lookups read through the cache.
func NewRestaurantCountry(
	restaurants storage.Store[model.Restaurant],
	countries storage.Store[model.Country],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *BelongsTo[model.Restaurant, model.Country] {
	return NewBelongsTo(restaurants, countries, edges, cacheService, registry, invalidate,
		TargetRelation[model.Restaurant, model.Country]{
			Name:           "restaurant-country",
			LoadRelation:   "Country",
			TargetID:       func(r *model.Restaurant) *string { return r.CountryID },
			Target:         func(r *model.Restaurant) *model.Country { return r.Country },
			OwnerNotFound:  MsgRestaurantNotFound,
			TargetNotFound: MsgCountryNotFound,
			NotAssociated:  "country is not associated with the restaurant",
			CacheFind:      true,
		})
}

// NewProductCategory serves the product->category belongs-to relation.
func NewProductCategory(
	products storage.Store[model.Product],
	categories storage.Store[model.Category],
	edges storage.EdgeStore,
	cacheService cache.CacheService,
	registry *cache.KeyRegistry,
	invalidate Invalidator,
) *BelongsTo[model.Product, model.Category] {
	return NewBelongsTo(products, categories, edges, cacheService, registry, invalidate,
		TargetRelation[model.Product, model.Category]{
			Name:           "product-category",
			LoadRelation:   "Category",
			TargetID:       func(p *model.Product) *string { return p.CategoryID },
			Target:         func(p *model.Product) *model.Category { return p.Category },
			OwnerNotFound:  MsgProductNotFound,
			TargetNotFound: MsgCategoryNotFound,
			NotAssociated:  "category is not associated with the product",
		})
}

// CRUD kind descriptors.

func CultureKind() Kind[model.Culture] {
	return Kind[model.Culture]{
		CacheKey:         "culture",
		NotFound:         MsgCultureNotFound,
		FindOneRelations: []string{"Countries", "Products", "Restaurants", "Recipes"},
		Validate:         func(c *model.Culture) error { return c.Validate() },
		Merge: func(existing, patch *model.Culture) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
			if patch.Description != "" {
				existing.Description = patch.Description
			}
		},
	}
}

func CountryKind() Kind[model.Country] {
	return Kind[model.Country]{
		CacheKey:         "country",
		NotFound:         MsgCountryNotFound,
		FindOneRelations: []string{"Cultures", "Restaurants"},
		Validate:         func(c *model.Country) error { return c.Validate() },
		Merge: func(existing, patch *model.Country) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
		},
	}
}

func ProductKind() Kind[model.Product] {
	return Kind[model.Product]{
		CacheKey:         "product",
		NotFound:         MsgProductNotFound,
		FindOneRelations: []string{"Category", "Culture"},
		Validate:         func(p *model.Product) error { return p.Validate() },
		Merge: func(existing, patch *model.Product) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
			if patch.Description != "" {
				existing.Description = patch.Description
			}
			if patch.History != "" {
				existing.History = patch.History
			}
			if patch.CategoryID != nil {
				existing.CategoryID = patch.CategoryID
			}
			if patch.CultureID != nil {
				existing.CultureID = patch.CultureID
			}
		},
	}
}

func CategoryKind() Kind[model.Category] {
	return Kind[model.Category]{
		CacheKey:         "category",
		NotFound:         MsgCategoryNotFound,
		FindOneRelations: []string{"Products"},
		Validate:         func(c *model.Category) error { return c.Validate() },
		Merge: func(existing, patch *model.Category) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
		},
	}
}

func RecipeKind() Kind[model.Recipe] {
	return Kind[model.Recipe]{
		CacheKey:         "recipe",
		NotFound:         MsgRecipeNotFound,
		FindOneRelations: []string{"Culture"},
		Validate:         func(r *model.Recipe) error { return r.Validate() },
		Merge: func(existing, patch *model.Recipe) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
			if patch.Description != "" {
				existing.Description = patch.Description
			}
			if patch.PhotoURI != "" {
				existing.PhotoURI = patch.PhotoURI
			}
			if patch.VideoURI != "" {
				existing.VideoURI = patch.VideoURI
			}
			if patch.Preparation != "" {
				existing.Preparation = patch.Preparation
			}
			if patch.CultureID != nil {
				existing.CultureID = patch.CultureID
			}
		},
	}
}

func RestaurantKind() Kind[model.Restaurant] {
	return Kind[model.Restaurant]{
		CacheKey:         "restaurant",
		NotFound:         MsgRestaurantNotFound,
		FindOneRelations: []string{"Stars", "Cultures", "Country"},
		Validate:         func(r *model.Restaurant) error { return r.Validate() },
		Merge: func(existing, patch *model.Restaurant) {
			if patch.Name != "" {
				existing.Name = patch.Name
			}
			if patch.City != "" {
				existing.City = patch.City
			}
			if patch.CountryID != nil {
				existing.CountryID = patch.CountryID
			}
		},
	}
}
