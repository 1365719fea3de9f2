package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps domain errors to HTTP statuses: validation
// failures to 400, missing records to 404, lifecycle conflicts to 409.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case domain.IsStateConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyRedeemed), errors.Is(err, domain.ErrCouponNotAvailable):
		respondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
