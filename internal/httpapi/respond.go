// Package httpapi exposes the catalog services over REST: entity CRUD,
// association management and star awards, with typed failures mapped to
// 404 and 412.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/gastromap/catalog/errs"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps typed service errors onto their HTTP status, treats
// validation failures as bad requests, and hides everything else behind a
// 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if typed := errs.As(err); typed != nil {
		respondJSON(w, typed.HTTPStatus(), errorBody{Error: typed.Message})
		return
	}

	var invalid validation.Errors
	if errors.As(err, &invalid) {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Error()})
		return
	}

	logger.Error("request failed", zap.Error(err))
	respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
