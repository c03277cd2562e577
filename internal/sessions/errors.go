package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for decision session operations.
var (
	ErrNotFound     = errors.New("decision session not found")
	ErrDuplicate    = errors.New("decision session already exists")
	ErrEmailMissing = errors.New("email is required")
	ErrNoIdentifier = errors.New("session_id or email is required")
)

// MapHTTPStatus maps session domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmailMissing) || errors.Is(err, ErrNoIdentifier) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
