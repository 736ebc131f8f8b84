// Package apperr defines the sentinel errors the service layer returns and
// controllers translate into HTTP status codes.
package apperr

import "errors"

var (
	// ErrNotFound: the requested document does not exist or is hidden
	// from the storefront.
	ErrNotFound = errors.New("not found")

	// ErrValidation: the input failed validation. Usually wrapped with
	// field details via Validation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: a uniqueness constraint (slug, SKU, email, order
	// number) was violated.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized: missing or invalid credentials/session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrInsufficientStock: checkout referenced a product that is
	// inactive or already out of stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnavailable: a required backing service (Redis, MongoDB) is
	// down and no fallback could serve the request.
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError carries field-level messages alongside ErrValidation so
// the response layer can render a 422 with details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation wraps a field-error map into an error.
func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// FieldsOf extracts the field map when err is (or wraps) a ValidationError.
func FieldsOf(err error) (map[string]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
