// Package response renders the JSON envelope every endpoint uses:
// {"status": ..., "message": ..., "data": ..., "errors": ...}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shirshak001/JEWEL/pkg/apperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Pagination is the metadata block attached to list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page count for a result window.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Message sends a 200 with a message and no data.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Message: msg})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Paginated sends a 200 response with items and pagination metadata.
func Paginated(w http.ResponseWriter, items interface{}, p Pagination) {
	body := map[string]interface{}{
		"items":      items,
		"pagination": p,
	}
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: body})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// FromError maps a service-layer error onto the HTTP surface. Unknown
// errors become a 500 with a generic message so internals never leak.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		if fields, ok := apperr.FieldsOf(err); ok {
			ValidationError(w, fields)
			return
		}
		Error(w, http.StatusUnprocessableEntity, "Validation failed")
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(w)
	case errors.Is(err, apperr.ErrConflict):
		Error(w, http.StatusConflict, "Already exists")
	case errors.Is(err, apperr.ErrUnauthorized):
		Unauthorized(w)
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(w)
	case errors.Is(err, apperr.ErrInsufficientStock):
		Error(w, http.StatusConflict, "Insufficient stock")
	case errors.Is(err, apperr.ErrUnavailable):
		Error(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
