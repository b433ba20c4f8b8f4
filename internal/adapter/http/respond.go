package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/YelzhanWeb/tableside/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondOK(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// errorStatus maps domain errors onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrAdditionNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrUnknownTemplate),
		errors.Is(err, domain.ErrNoDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
