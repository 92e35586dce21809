package handlers

import (
	"context"
	"errors"
	"net/http"
	"pictoroute/internal/routing"
	"pictoroute/internal/services"
)

// writeServiceError maps use-case errors to HTTP statuses. Unknown errors are
// reported as 500 without leaking their text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, routing.ErrMissingCoordinate):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, routing.ErrInvalidInput),
		errors.Is(err, services.ErrTooManyStops),
		errors.Is(err, services.ErrNoImages):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrExtractionFailed):
		writeError(w, r, http.StatusBadGateway, "address extraction failed")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "request timed out")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
