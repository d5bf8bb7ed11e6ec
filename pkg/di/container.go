// Package di wires the catalog's storage, cache and service singletons.
package di

import (
	"github.com/uptrace/bun"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/model"
	"github.com/gastromap/catalog/services"
	"github.com/gastromap/catalog/storage"
)

// Options configures the container.
type Options struct {
	// DB is the bun handle every store runs on.
	DB *bun.DB
	// Cache tunes the shared cache service. Zero value uses defaults.
	Cache cache.Config
	// WriteInvalidation opts into deleting tracked cache keys on writes.
	// Off by default: cached reads stay stale until TTL.
	WriteInvalidation bool
}

// Container manages singleton instances of the catalog services and the
// shared cache plumbing behind them.
type Container struct {
	db           *bun.DB
	cacheService cache.CacheService
	registry     *cache.KeyRegistry
	invalidate   services.Invalidator

	cultures    storage.Store[model.Culture]
	countries   storage.Store[model.Country]
	categories  storage.Store[model.Category]
	products    storage.Store[model.Product]
	recipes     storage.Store[model.Recipe]
	restaurants storage.Store[model.Restaurant]
	stars       storage.Store[model.Star]

	cultureCountries   *services.Association[model.Culture, model.Country]
	countryCultures    *services.Association[model.Country, model.Culture]
	cultureProducts    *services.Association[model.Culture, model.Product]
	cultureRecipes     *services.Association[model.Culture, model.Recipe]
	cultureRestaurants *services.Association[model.Culture, model.Restaurant]
	restaurantCountry  *services.BelongsTo[model.Restaurant, model.Country]
	productCategory    *services.BelongsTo[model.Product, model.Category]
	starService        *services.Stars

	cultureEntities    *services.Entity[model.Culture]
	countryEntities    *services.Entity[model.Country]
	categoryEntities   *services.Entity[model.Category]
	productEntities    *services.Entity[model.Product]
	recipeEntities     *services.Entity[model.Recipe]
	restaurantEntities *services.Entity[model.Restaurant]
}

// New creates a container and wires every service against the shared cache
// service and key registry.
func New(opts Options) (*Container, error) {
	cfg := opts.Cache
	if cfg == (cache.Config{}) {
		cfg = cache.DefaultConfig()
	}
	cacheService, err := cache.NewCacheService(cfg)
	if err != nil {
		return nil, err
	}

	registry := cache.NewKeyRegistry()
	invalidate := services.NoInvalidation()
	if opts.WriteInvalidation {
		invalidate = services.NewCacheInvalidator(cacheService, registry)
	}

	c := &Container{
		db:           opts.DB,
		cacheService: cacheService,
		registry:     registry,
		invalidate:   invalidate,

		cultures:    storage.Cultures(opts.DB),
		countries:   storage.Countries(opts.DB),
		categories:  storage.Categories(opts.DB),
		products:    storage.Products(opts.DB),
		recipes:     storage.Recipes(opts.DB),
		restaurants: storage.Restaurants(opts.DB),
		stars:       storage.Stars(opts.DB),
	}

	c.cultureCountries = services.NewCultureCountries(
		c.cultures, c.countries, storage.CultureCountryEdges(opts.DB),
		cacheService, registry, invalidate)
	c.countryCultures = services.NewCountryCultures(
		c.countries, c.cultures, storage.CountryCultureEdges(opts.DB),
		cacheService, registry, invalidate)
	c.cultureProducts = services.NewCultureProducts(
		c.cultures, c.products, storage.CultureProductEdges(opts.DB),
		cacheService, registry, invalidate)
	c.cultureRecipes = services.NewCultureRecipes(
		c.cultures, c.recipes, storage.CultureRecipeEdges(opts.DB),
		cacheService, registry, invalidate)
	c.cultureRestaurants = services.NewCultureRestaurants(
		c.cultures, c.restaurants, storage.CultureRestaurantEdges(opts.DB),
		cacheService, registry, invalidate)
	c.restaurantCountry = services.NewRestaurantCountry(
		c.restaurants, c.countries, storage.RestaurantCountryEdges(opts.DB),
		cacheService, registry, invalidate)
	c.productCategory = services.NewProductCategory(
		c.products, c.categories, storage.ProductCategoryEdges(opts.DB),
		cacheService, registry, invalidate)
	c.starService = services.NewStars(
		c.stars, c.restaurants, cacheService, registry, invalidate)

	c.cultureEntities = services.NewEntity(c.cultures, cacheService, registry, invalidate, services.CultureKind())
	c.countryEntities = services.NewEntity(c.countries, cacheService, registry, invalidate, services.CountryKind())
	c.categoryEntities = services.NewEntity(c.categories, cacheService, registry, invalidate, services.CategoryKind())
	c.productEntities = services.NewEntity(c.products, cacheService, registry, invalidate, services.ProductKind())
	c.recipeEntities = services.NewEntity(c.recipes, cacheService, registry, invalidate, services.RecipeKind())
	c.restaurantEntities = services.NewEntity(c.restaurants, cacheService, registry, invalidate, services.RestaurantKind())

	return c, nil
}

// DB returns the underlying bun handle.
func (c *Container) DB() *bun.DB { return c.db }

// CacheService returns the shared cache service instance.
func (c *Container) CacheService() cache.CacheService { return c.cacheService }

// KeyRegistry returns the registry of filled cache keys.
func (c *Container) KeyRegistry() *cache.KeyRegistry { return c.registry }

func (c *Container) CultureCountries() *services.Association[model.Culture, model.Country] {
	return c.cultureCountries
}

func (c *Container) CountryCultures() *services.Association[model.Country, model.Culture] {
	return c.countryCultures
}

func (c *Container) CultureProducts() *services.Association[model.Culture, model.Product] {
	return c.cultureProducts
}

func (c *Container) CultureRecipes() *services.Association[model.Culture, model.Recipe] {
	return c.cultureRecipes
}

func (c *Container) CultureRestaurants() *services.Association[model.Culture, model.Restaurant] {
	return c.cultureRestaurants
}

func (c *Container) RestaurantCountry() *services.BelongsTo[model.Restaurant, model.Country] {
	return c.restaurantCountry
}

func (c *Container) ProductCategory() *services.BelongsTo[model.Product, model.Category] {
	return c.productCategory
}

func (c *Container) Stars() *services.Stars { return c.starService }

func (c *Container) Cultures() *services.Entity[model.Culture] { return c.cultureEntities }

func (c *Container) Countries() *services.Entity[model.Country] { return c.countryEntities }

func (c *Container) Categories() *services.Entity[model.Category] { return c.categoryEntities }

func (c *Container) Products() *services.Entity[model.Product] { return c.productEntities }

func (c *Container) Recipes() *services.Entity[model.Recipe] { return c.recipeEntities }

func (c *Container) Restaurants() *services.Entity[model.Restaurant] { return c.restaurantEntities }
