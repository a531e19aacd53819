// Package validation holds the pure input checks run by the handler layer
// before any service is invoked.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brgykonek/brgykonek-backend/internal/models"
)

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	// Philippine mobile format: +639XXXXXXXXX or 09XXXXXXXXX
	mobileRe = regexp.MustCompile(`^(\+63|0)9\d{9}$`)
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RegisterInput is the raw registration payload before validation.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	MobileNumber string
	UserType     string
	Address      string
	Birthdate    string
}

// ValidateRegister checks a registration payload and returns every field
// error found. An empty slice means the input is valid.
func ValidateRegister(in RegisterInput) []FieldError {
	var errs []FieldError

	if name := strings.TrimSpace(in.Name); name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if len(name) > 100 {
		errs = append(errs, FieldError{"name", "Name cannot exceed 100 characters"})
	}

	errs = append(errs, validateEmail(in.Email)...)

	if len(in.Password) < 6 {
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters long"})
	}

	if in.MobileNumber != "" && !mobileRe.MatchString(in.MobileNumber) {
		errs = append(errs, FieldError{"mobile_number", "Please provide a valid Philippine mobile number"})
	}

	if in.UserType != "" && !models.ValidUserType(in.UserType) {
		errs = append(errs, FieldError{"user_type", "User type must be either resident, staff, or admin"})
	}

	if len(strings.TrimSpace(in.Address)) > 200 {
		errs = append(errs, FieldError{"address", "Address cannot exceed 200 characters"})
	}

	return errs
}

// ValidateLogin checks a login payload.
func ValidateLogin(email, password string) []FieldError {
	var errs []FieldError
	errs = append(errs, validateEmail(email)...)
	if password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	return errs
}

// ValidateEmail checks a lone email field (OTP request/verify, reset).
func ValidateEmail(email string) []FieldError {
	return validateEmail(email)
}

// ValidatePassword checks a new password (reset and admin password change).
func ValidatePassword(password string) []FieldError {
	if len(password) < 6 {
		return []FieldError{{"password", "Password must be at least 6 characters long"}}
	}
	return nil
}

// ValidateMobileNumber checks an optional mobile number field.
func ValidateMobileNumber(mobile string) []FieldError {
	if mobile != "" && !mobileRe.MatchString(mobile) {
		return []FieldError{{"mobile_number", "Please provide a valid Philippine mobile number"}}
	}
	return nil
}

func validateEmail(email string) []FieldError {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return []FieldError{{"email", "Please provide a valid email address"}}
	}
	return nil
}
