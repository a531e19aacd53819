package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brgykonek/brgykonek-backend/internal/services"
	"github.com/brgykonek/brgykonek-backend/internal/validation"
)

// AdminHandler serves administrator user management.
type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers returns all users without password hashes.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	userList := make([]map[string]interface{}, len(users))
	for i := range users {
		userList[i] = users[i].Sanitized()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   userList,
		"count":   len(userList),
	})
}

// GetUser returns a single user by ID.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.admin.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "User retrieved successfully",
		User:    user.Sanitized(),
	})
}

type adminUpdateUserRequest struct {
	Name              *string `json:"name"`
	MobileNumber      *string `json:"mobile_number"`
	UserType          *string `json:"user_type"`
	Address           *string `json:"address"`
	Birthdate         *string `json:"birthdate"`
	BarangayClearance *string `json:"barangay_clearance"`
}

// UpdateUser applies a partial profile update to a user. Passwords are not
// accepted here; ChangePassword is the dedicated operation.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.MobileNumber != nil {
		if fieldErrs := validation.ValidateMobileNumber(*req.MobileNumber); len(fieldErrs) > 0 {
			writeValidationErrors(w, fieldErrs)
			return
		}
	}

	var birthdate *time.Time
	if req.Birthdate != nil && *req.Birthdate != "" {
		parsed, ok := parseBirthdate(*req.Birthdate)
		if !ok {
			writeValidationErrors(w, []validation.FieldError{{Field: "birthdate", Message: "Please provide a valid birthdate"}})
			return
		}
		birthdate = parsed
	}

	updated, err := h.admin.UpdateUserFields(r.Context(), chi.URLParam(r, "id"), services.UpdateUserInput{
		Name:              req.Name,
		MobileNumber:      req.MobileNumber,
		UserType:          req.UserType,
		Address:           req.Address,
		Birthdate:         birthdate,
		BarangayClearance: req.BarangayClearance,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "User updated successfully",
		User:    updated.Sanitized(),
	})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangePassword sets a new password for a user.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if fieldErrs := validation.ValidatePassword(req.NewPassword); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	updated, err := h.admin.ChangeUserPassword(r.Context(), chi.URLParam(r, "id"), req.NewPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Password changed successfully",
		User:    updated.Sanitized(),
	})
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}
