package venues

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("venue not found")
	ErrDuplicate    = errors.New("venue already exists")
	ErrInvalidFile  = errors.New("invalid or missing image file")
	ErrFileTooLarge = errors.New("image exceeds maximum upload size")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrNoImage      = errors.New("venue has no background image")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrNotAnImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
