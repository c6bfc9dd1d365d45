package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// errorResponse is the JSON body every error endpoint returns.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service-layer error onto the wire taxonomy.
// notFoundMsg supplies the resource-specific 404 message because the
// handler is the layer that knows what was being looked up. Unrecognized
// errors are logged and answered with an opaque 500.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMsg)
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", domain.ErrRateLimited.Error())
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusPaymentRequired, "quota_exceeded", domain.ErrQuotaExceeded.Error())
	case errors.Is(err, domain.ErrBadModelOutput):
		writeError(w, http.StatusBadGateway, "bad_model_output", domain.ErrBadModelOutput.Error())
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream_error", "upstream service unavailable")
	default:
		s.log.ErrorContext(r.Context(), "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g.
// "service.TripService.Create: validation error: title is required"
// → "title is required".
func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if idx := strings.LastIndex(msg, marker); idx >= 0 {
		return msg[idx+len(marker):]
	}
	return msg
}
