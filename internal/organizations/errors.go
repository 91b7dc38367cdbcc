package organizations

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("organization not found")
	ErrDuplicate = errors.New("organization already exists")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
