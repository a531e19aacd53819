package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
	"github.com/brgykonek/brgykonek-backend/internal/validation"
)

// AuthResponse is the JSON envelope returned by auth endpoints.
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps a service error to its HTTP status. Unrecognised
// errors are logged and masked as a generic server error.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.StatusCode() >= http.StatusInternalServerError {
			log.Printf("ERROR: %v", err)
		}
		writeJSON(w, appErr.StatusCode(), AuthResponse{
			Success: false,
			Message: appErr.Message,
		})
		return
	}
	log.Printf("ERROR: %v", err)
	writeJSON(w, http.StatusInternalServerError, AuthResponse{
		Success: false,
		Message: "Server error",
	})
}

// writeValidationErrors returns a 400 with per-field messages.
func writeValidationErrors(w http.ResponseWriter, fieldErrs []validation.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": "Validation failed",
		"errors":  fieldErrs,
	})
}
