package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the storefront core. Handlers match with
// errors.Is and map to a status via Status; anything unrecognized is a
// generic 500 with no internal detail in the response body.
var (
	ErrValidation = errors.New("invalid input")
	ErrAuth       = errors.New("unauthorized")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
