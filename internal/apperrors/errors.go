package apperrors

import (
	"errors"
	"net/http"
)

// Error kinds. Concrete errors wrap one of these with fmt.Errorf("...: %w", kind)
// so callers can classify them with errors.Is.
var (
	// ErrLoadFailure means a catalog or feed fetch failed.
	ErrLoadFailure = errors.New("load failure")
	// ErrMutationFailure means the data source rejected a write.
	ErrMutationFailure = errors.New("mutation failure")
	// ErrAuthFailure means credentials or a token were rejected.
	ErrAuthFailure = errors.New("auth failure")
	// ErrStorageFailure means durable key-value storage was unreachable.
	ErrStorageFailure = errors.New("storage failure")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

// Status maps an error to the HTTP status code a handler should answer with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrLoadFailure), errors.Is(err, ErrStorageFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
