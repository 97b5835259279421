package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// conflictRetryAfter is the Retry-After hint, in seconds, sent with 409 conflict responses.
const conflictRetryAfter = 1

// writeServiceError maps a domain error to its HTTP status and error code. Unknown errors are
// logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrEventFull):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeEventFull, domain.ErrEventFull.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyRegistered, domain.ErrAlreadyRegistered.Error())
	case errors.Is(err, domain.ErrEventAlreadyOccurred):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeEventAlreadyOccurred, domain.ErrEventAlreadyOccurred.Error())
	case errors.Is(err, domain.ErrConflict):
		w.Header().Set("Retry-After", strconv.Itoa(conflictRetryAfter))
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrConflict.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
