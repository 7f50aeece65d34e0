package util

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
)

// UUIDParam reads a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, apperror.Invalid(name, nil, "is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Invalid(name, raw, "must be a valid UUID")
	}
	return id, nil
}

// DateQuery reads an optional YYYY-MM-DD query parameter, falling back to
// today when it is absent.
func DateQuery(r *http.Request, name string) (LocalDate, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return Today(), nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return LocalDate{}, apperror.Invalid(name, raw, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
