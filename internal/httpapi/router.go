package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gastromap/catalog/pkg/di"
)

// Router builds the catalog's HTTP surface from the wired container.
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

func NewRouter(container *di.Container, logger *zap.Logger) *Router {
	return &Router{container: container, logger: logger}
}

// Setup configures middleware and all routes.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := rt.container
	stars := newStarHandler(c.Stars(), rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/cultures", func(r chi.Router) {
			newEntityHandler(c.Cultures(), "cultureID", rt.logger).Mount(r, func(r chi.Router) {
				r.Route("/countries", func(r chi.Router) {
					newAssociationHandler(c.CultureCountries(), "cultureID", "countryID", rt.logger).Mount(r)
				})
				r.Route("/products", func(r chi.Router) {
					newAssociationHandler(c.CultureProducts(), "cultureID", "productID", rt.logger).Mount(r)
				})
				r.Route("/recipes", func(r chi.Router) {
					newAssociationHandler(c.CultureRecipes(), "cultureID", "recipeID", rt.logger).Mount(r)
				})
				r.Route("/restaurants", func(r chi.Router) {
					newAssociationHandler(c.CultureRestaurants(), "cultureID", "restaurantID", rt.logger).Mount(r)
				})
			})
		})

		r.Route("/countries", func(r chi.Router) {
			newEntityHandler(c.Countries(), "countryID", rt.logger).Mount(r, func(r chi.Router) {
				r.Route("/cultures", func(r chi.Router) {
					newAssociationHandler(c.CountryCultures(), "countryID", "cultureID", rt.logger).Mount(r)
				})
			})
		})

		r.Route("/categories", func(r chi.Router) {
			newEntityHandler(c.Categories(), "categoryID", rt.logger).Mount(r, nil)
		})

		r.Route("/products", func(r chi.Router) {
			newEntityHandler(c.Products(), "productID", rt.logger).Mount(r, func(r chi.Router) {
				r.Route("/category", func(r chi.Router) {
					newBelongsToHandler(c.ProductCategory(), "productID", "categoryID", rt.logger).Mount(r)
				})
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			newEntityHandler(c.Recipes(), "recipeID", rt.logger).Mount(r, nil)
		})

		r.Route("/restaurants", func(r chi.Router) {
			newEntityHandler(c.Restaurants(), "restaurantID", rt.logger).Mount(r, func(r chi.Router) {
				r.Route("/country", func(r chi.Router) {
					newBelongsToHandler(c.RestaurantCountry(), "restaurantID", "countryID", rt.logger).Mount(r)
				})
				r.Route("/stars", stars.MountRestaurant)
			})
		})

		r.Route("/stars", stars.MountGlobal)
	})

	return router
}
