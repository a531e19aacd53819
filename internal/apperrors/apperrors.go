// Package apperrors defines the named failure kinds the service layer reports.
// Handlers map each kind to an HTTP status; internal store errors are wrapped
// behind StoreUnavailable so persistence details never leak to clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a category of application error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindEmailTaken: registration attempted with an email that already exists.
	KindEmailTaken
	// KindInvalidCredentials: login failed. The same kind and message are used
	// for unknown email and wrong password so the login path cannot be used to
	// enumerate accounts.
	KindInvalidCredentials
	// KindNotFound: the referenced user does not exist.
	KindNotFound
	// KindInvalidOTP: no active code matches the (email, code, purpose) triple.
	KindInvalidOTP
	// KindAlreadyUsed: the code was already consumed.
	KindAlreadyUsed
	// KindExpired: the code or token is past its expiry.
	KindExpired
	// KindSigningKeyMissing: no JWT signing secret is configured.
	KindSigningKeyMissing
	// KindNotificationFailure: the OTP email could not be delivered.
	KindNotificationFailure
	// KindStoreUnavailable: generic persistence failure.
	KindStoreUnavailable
	// KindInvalidToken: a bearer token failed signature or shape checks.
	KindInvalidToken
	// KindValidation: request input failed validation.
	KindValidation
	// KindForbidden: the authenticated user lacks the required user_type.
	KindForbidden
)

// Error is the application error type carried between services and handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindEmailTaken:
		return http.StatusConflict
	case KindInvalidCredentials, KindInvalidToken:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidOTP, KindAlreadyUsed, KindExpired, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func EmailTaken() *Error {
	return newError(KindEmailTaken, "User with this email already exists", nil)
}

func InvalidCredentials() *Error {
	return newError(KindInvalidCredentials, "Invalid credentials", nil)
}

func UserNotFound() *Error {
	return newError(KindNotFound, "User not found", nil)
}

func InvalidOTP() *Error {
	return newError(KindInvalidOTP, "Invalid OTP code", nil)
}

func OTPAlreadyUsed() *Error {
	return newError(KindAlreadyUsed, "OTP already used", nil)
}

func OTPExpired() *Error {
	return newError(KindExpired, "OTP code has expired", nil)
}

func SigningKeyMissing() *Error {
	return newError(KindSigningKeyMissing, "JWT secret not configured", nil)
}

func NotificationFailure(err error) *Error {
	return newError(KindNotificationFailure, "Failed to send OTP email", err)
}

func StoreUnavailable(err error) *Error {
	return newError(KindStoreUnavailable, "Database error", err)
}

func InvalidToken(err error) *Error {
	return newError(KindInvalidToken, "Invalid or expired token", err)
}

func TokenExpired() *Error {
	return newError(KindExpired, "Token has expired", nil)
}

func Validation(message string) *Error {
	return newError(KindValidation, message, nil)
}

func Forbidden(message string) *Error {
	return newError(KindForbidden, message, nil)
}

// KindOf extracts the Kind from err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
