package datasets

import (
	"errors"
	"net/http"
)

// Domain errors for dataset operations. ErrNotFound covers every
// absent-or-unauthorized read uniformly so callers cannot probe for dataset
// existence through the token-gated endpoint.
var (
	ErrNotFound     = errors.New("dataset not found")
	ErrDuplicate    = errors.New("dataset already exists")
	ErrNameMissing  = errors.New("name is required")
	ErrInvalidID    = errors.New("invalid dataset id")
	ErrInvalidKind  = errors.New("kind must be crawl, analytics, or rows")
	ErrInvalidBody  = errors.New("invalid request body")
	ErrFileMissing  = errors.New("required export has not been uploaded")
	ErrFileTooLarge = errors.New("uploaded file exceeds size limit")
	ErrStorageFetch = errors.New("export file could not be fetched")
)

// MapHTTPStatus maps dataset domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNameMissing) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrInvalidBody) ||
		errors.Is(err, ErrFileMissing) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrStorageFetch) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
