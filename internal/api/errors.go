package api

import (
	"errors"
	"net/http"

	"finledger/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
// Unknown errors map to 500.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var unauthorized *domain.UnauthorizedError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError writes the envelope for a failed operation. Store
// faults (anything mapping to 500) are logged by the handler and surfaced
// with a generic body so internals never reach the client.
func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", r.URL.Path, "method", r.Method, "error", err)
		respondError(w, status, "internal error", "internal error")
		return
	}
	respondError(w, status, http.StatusText(status), err.Error())
}
