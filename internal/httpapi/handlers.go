package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gastromap/catalog/model"
	"github.com/gastromap/catalog/services"
)

// entityHandler serves the CRUD surface of one entity kind.
type entityHandler[T any] struct {
	svc    *services.Entity[T]
	param  string
	logger *zap.Logger
}

func newEntityHandler[T any](svc *services.Entity[T], param string, logger *zap.Logger) *entityHandler[T] {
	return &entityHandler[T]{svc: svc, param: param, logger: logger}
}

// Mount registers the CRUD routes. extra, when set, mounts additional
// subroutes under the id segment (association endpoints).
func (h *entityHandler[T]) Mount(r chi.Router, extra func(chi.Router)) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Route("/{"+h.param+"}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.remove)
		if extra != nil {
			extra(r)
		}
	})
}

func (h *entityHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.FindAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *entityHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.FindOne(r.Context(), chi.URLParam(r, h.param))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (h *entityHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var record T
	if err := decodeJSON(r, &record); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	saved, err := h.svc.Create(r.Context(), &record)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (h *entityHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	var patch T
	if err := decodeJSON(r, &patch); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	saved, err := h.svc.Update(r.Context(), chi.URLParam(r, h.param), &patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *entityHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, h.param)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// associationHandler serves one parent->children relation.
type associationHandler[P, C any] struct {
	svc         *services.Association[P, C]
	parentParam string
	childParam  string
	logger      *zap.Logger
}

func newAssociationHandler[P, C any](svc *services.Association[P, C], parentParam, childParam string, logger *zap.Logger) *associationHandler[P, C] {
	return &associationHandler[P, C]{svc: svc, parentParam: parentParam, childParam: childParam, logger: logger}
}

func (h *associationHandler[P, C]) Mount(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/", h.replace)
	r.Route("/{"+h.childParam+"}", func(r chi.Router) {
		r.Get("/", h.find)
		r.Post("/", h.add)
		r.Delete("/", h.remove)
	})
}

func (h *associationHandler[P, C]) list(w http.ResponseWriter, r *http.Request) {
	children, err := h.svc.FindAll(r.Context(), chi.URLParam(r, h.parentParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

func (h *associationHandler[P, C]) find(w http.ResponseWriter, r *http.Request) {
	child, err := h.svc.Find(r.Context(), chi.URLParam(r, h.parentParam), chi.URLParam(r, h.childParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

func (h *associationHandler[P, C]) add(w http.ResponseWriter, r *http.Request) {
	parent, err := h.svc.Add(r.Context(), chi.URLParam(r, h.parentParam), chi.URLParam(r, h.childParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, parent)
}

func (h *associationHandler[P, C]) remove(w http.ResponseWriter, r *http.Request) {
	parent, err := h.svc.Remove(r.Context(), chi.URLParam(r, h.parentParam), chi.URLParam(r, h.childParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, parent)
}

func (h *associationHandler[P, C]) replace(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	parent, err := h.svc.Replace(r.Context(), chi.URLParam(r, h.parentParam), body.IDs)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, parent)
}

// belongsToHandler serves one owner->target relation.
type belongsToHandler[O, T any] struct {
	svc         *services.BelongsTo[O, T]
	ownerParam  string
	targetParam string
	logger      *zap.Logger
}

func newBelongsToHandler[O, T any](svc *services.BelongsTo[O, T], ownerParam, targetParam string, logger *zap.Logger) *belongsToHandler[O, T] {
	return &belongsToHandler[O, T]{svc: svc, ownerParam: ownerParam, targetParam: targetParam, logger: logger}
}

func (h *belongsToHandler[O, T]) Mount(r chi.Router) {
	r.Get("/", h.find)
	r.Route("/{"+h.targetParam+"}", func(r chi.Router) {
		r.Post("/", h.associate)
		r.Delete("/", h.remove)
	})
}

func (h *belongsToHandler[O, T]) find(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.FindTarget(r.Context(), chi.URLParam(r, h.ownerParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

func (h *belongsToHandler[O, T]) associate(w http.ResponseWriter, r *http.Request) {
	owner, err := h.svc.Associate(r.Context(), chi.URLParam(r, h.ownerParam), chi.URLParam(r, h.targetParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, owner)
}

func (h *belongsToHandler[O, T]) remove(w http.ResponseWriter, r *http.Request) {
	owner, err := h.svc.Remove(r.Context(), chi.URLParam(r, h.ownerParam), chi.URLParam(r, h.targetParam))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, owner)
}

// starHandler serves star listings and awards.
type starHandler struct {
	svc    *services.Stars
	logger *zap.Logger
}

func newStarHandler(svc *services.Stars, logger *zap.Logger) *starHandler {
	return &starHandler{svc: svc, logger: logger}
}

// MountGlobal registers the flat read-only /stars routes.
func (h *starHandler) MountGlobal(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{starID}", h.get)
}

// MountRestaurant registers the per-restaurant routes. Mutations live
// here: awarding, updating and revoking a star all address it through
// its restaurant.
func (h *starHandler) MountRestaurant(r chi.Router) {
	r.Get("/", h.listByRestaurant)
	r.Post("/", h.create)
	r.Route("/{starID}", func(r chi.Router) {
		r.Put("/", h.update)
		r.Delete("/", h.remove)
	})
}

func (h *starHandler) list(w http.ResponseWriter, r *http.Request) {
	stars, err := h.svc.FindAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stars)
}

func (h *starHandler) listByRestaurant(w http.ResponseWriter, r *http.Request) {
	stars, err := h.svc.FindAllByRestaurant(r.Context(), chi.URLParam(r, "restaurantID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stars)
}

func (h *starHandler) get(w http.ResponseWriter, r *http.Request) {
	star, err := h.svc.FindOne(r.Context(), chi.URLParam(r, "starID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, star)
}

func (h *starHandler) create(w http.ResponseWriter, r *http.Request) {
	var star model.Star
	if err := decodeJSON(r, &star); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	saved, err := h.svc.Create(r.Context(), chi.URLParam(r, "restaurantID"), &star)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (h *starHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch model.Star
	if err := decodeJSON(r, &patch); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	saved, err := h.svc.Update(r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "starID"), &patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *starHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "starID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
