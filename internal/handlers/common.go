package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"moments-backend/internal/services"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respondJSON sends a JSON response with the given status
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Success: false, Message: message})
}

// statusFromError maps service errors to HTTP status codes.
// Unrecognized errors become 500 and their message is passed through.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotPhotoOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
