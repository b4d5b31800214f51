package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across domain layers. Modules wrap these so handlers
// can map any failure to a status without knowing which module produced it.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicate       = errors.New("duplicate entry")
	ErrValidation      = errors.New("validation failed")
	ErrBackend         = errors.New("backend fault")
)

// RespondError maps domain errors to RFC7807 responses.
//
// Authentication failures (401) and authorization failures (403) are kept
// distinct, as are conflicts (409) and backend faults (502): callers and the
// UI treat "not logged in", "no permission", "data bug" and "try again later"
// differently. Backend faults never leak driver detail to the caller.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, ErrBackend):
		Problem(w, http.StatusBadGateway, "Backend Fault", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
