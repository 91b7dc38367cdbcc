package agents

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no agent matched the requested identifier.
	ErrNotFound = errors.New("agent not found")
	// ErrDuplicate indicates an agent with the same slug already exists
	// within the organization.
	ErrDuplicate = errors.New("agent already exists")
	// ErrInvalidManifest indicates a capabilities payload carried a
	// function manifest that is not valid JSON.
	ErrInvalidManifest = errors.New("function manifest is not valid JSON")
	// ErrBillingRequired indicates a first publish was attempted without
	// billing confirmation.
	ErrBillingRequired = errors.New("billing confirmation required")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidManifest):
		return http.StatusBadRequest
	case errors.Is(err, ErrBillingRequired):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
