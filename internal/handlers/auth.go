package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/brgykonek/brgykonek-backend/internal/middleware"
	"github.com/brgykonek/brgykonek-backend/internal/services"
	"github.com/brgykonek/brgykonek-backend/internal/validation"
)

const clearanceFolder = "brgykonek/clearances"

// AuthHandler serves registration, login, profile, OTP, and password reset.
type AuthHandler struct {
	auth    *services.AuthService
	uploads *services.CloudinaryService // nil when uploads are not configured
}

func NewAuthHandler(auth *services.AuthService, uploads *services.CloudinaryService) *AuthHandler {
	return &AuthHandler{auth: auth, uploads: uploads}
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number,omitempty"`
	UserType     string `json:"user_type,omitempty"`
	Address      string `json:"address,omitempty"`
	Birthdate    string `json:"birthdate,omitempty"`
}

// Register handles user registration. Accepts JSON, or multipart/form-data
// with an optional barangay_clearance file that is uploaded to Cloudinary
// before the account is created.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	var clearanceURL string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		req = registerRequest{
			Name:         r.FormValue("name"),
			Email:        r.FormValue("email"),
			Password:     r.FormValue("password"),
			MobileNumber: r.FormValue("mobile_number"),
			UserType:     r.FormValue("user_type"),
			Address:      r.FormValue("address"),
			Birthdate:    r.FormValue("birthdate"),
		}

		if headers := r.MultipartForm.File["barangay_clearance"]; len(headers) > 0 {
			if h.uploads == nil {
				writeJSON(w, http.StatusInternalServerError, AuthResponse{
					Success: false,
					Message: "File upload service not available",
				})
				return
			}
			url, err := h.uploads.UploadFileFromHeader(r.Context(), headers[0], clearanceFolder)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, AuthResponse{
					Success: false,
					Message: "Failed to upload barangay clearance",
				})
				return
			}
			clearanceURL = url
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	fieldErrs := validation.ValidateRegister(validation.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		UserType:     req.UserType,
		Address:      req.Address,
		Birthdate:    req.Birthdate,
	})
	if len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	birthdate, ok := parseBirthdate(req.Birthdate)
	if !ok {
		writeValidationErrors(w, []validation.FieldError{{Field: "birthdate", Message: "Please provide a valid birthdate"}})
		return
	}

	result, err := h.auth.Register(r.Context(), services.RegisterInput{
		Name:              strings.TrimSpace(req.Name),
		Email:             req.Email,
		Password:          req.Password,
		MobileNumber:      req.MobileNumber,
		UserType:          req.UserType,
		Address:           strings.TrimSpace(req.Address),
		Birthdate:         birthdate,
		BarangayClearance: clearanceURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    result.User.Sanitized(),
		Token:   result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := validation.ValidateLogin(req.Email, req.Password); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    result.User.Sanitized(),
		Token:   result.Token,
	})
}

// MyProfile returns the authenticated user's profile.
func (h *AuthHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "User not authenticated"})
		return
	}

	profile, err := h.auth.GetProfile(r.Context(), user.ID.Hex())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Profile retrieved successfully",
		User:    profile.Sanitized(),
	})
}

type updateProfileRequest struct {
	Name              *string `json:"name"`
	MobileNumber      *string `json:"mobile_number"`
	Address           *string `json:"address"`
	Birthdate         *string `json:"birthdate"`
	BarangayClearance *string `json:"barangay_clearance"`
}

// UpdateMyProfile applies a partial update to the authenticated user's
// profile. Absent fields are unchanged; optional fields set to "" are cleared.
func (h *AuthHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "User not authenticated"})
		return
	}

	var req updateProfileRequest
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

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID.Hex(), services.UpdateProfileInput{
		Name:              req.Name,
		MobileNumber:      req.MobileNumber,
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
		Message: "Profile updated successfully",
		User:    updated.Sanitized(),
	})
}

type otpRequest struct {
	Email string `json:"email"`
}

// RequestOTP issues a fresh OTP code for the email.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if fieldErrs := validation.ValidateEmail(req.Email); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	if err := h.auth.RequestOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "OTP sent to your email",
	})
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

// VerifyOTP consumes the OTP code for the email.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OTPCode == "" {
		writeValidationErrors(w, []validation.FieldError{{Field: "otp_code", Message: "OTP code is required"}})
		return
	}
	if fieldErrs := validation.ValidateEmail(req.Email); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	if err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTPCode); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "OTP verified successfully",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// ResetPassword stores a new password for the email. No session token is
// issued; the user logs in again afterwards.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if fieldErrs := validation.ValidateEmail(req.Email); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}
	if fieldErrs := validation.ValidatePassword(req.NewPassword); len(fieldErrs) > 0 {
		writeValidationErrors(w, fieldErrs)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Password reset successfully. Please log in with your new password.",
	})
}

// parseBirthdate accepts YYYY-MM-DD or RFC 3339. Empty input is valid and
// yields nil.
func parseBirthdate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}
