package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{EmailTaken(), http.StatusConflict},
		{InvalidCredentials(), http.StatusUnauthorized},
		{UserNotFound(), http.StatusNotFound},
		{InvalidOTP(), http.StatusBadRequest},
		{OTPAlreadyUsed(), http.StatusBadRequest},
		{OTPExpired(), http.StatusBadRequest},
		{SigningKeyMissing(), http.StatusInternalServerError},
		{NotificationFailure(nil), http.StatusInternalServerError},
		{StoreUnavailable(nil), http.StatusInternalServerError},
		{InvalidToken(nil), http.StatusUnauthorized},
		{Validation("bad"), http.StatusBadRequest},
		{Forbidden("no"), http.StatusForbidden},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	// The wrapped cause survives another layer of wrapping.
	outer := fmt.Errorf("loading user: %w", err)
	assert.True(t, Is(outer, KindStoreUnavailable))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindEmailTaken, KindOf(EmailTaken()))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	// Same message for unknown email and wrong password.
	assert.Equal(t, InvalidCredentials().Error(), InvalidCredentials().Error())
	assert.Equal(t, "Invalid credentials", InvalidCredentials().Message)
}
