package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPExpired(t *testing.T) {
	expiresAt := time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC)
	otp := OTP{ExpiresAt: expiresAt}

	assert.False(t, otp.Expired(expiresAt.Add(-time.Minute)))
	// The expiry instant itself is still valid.
	assert.False(t, otp.Expired(expiresAt))
	assert.True(t, otp.Expired(expiresAt.Add(time.Nanosecond)))
}

func TestValidUserType(t *testing.T) {
	for _, v := range []string{"resident", "staff", "admin"} {
		assert.True(t, ValidUserType(v))
	}
	assert.False(t, ValidUserType("mayor"))
	assert.False(t, ValidUserType(""))
}

func TestUserSanitized(t *testing.T) {
	u := User{
		Name:     "Juan dela Cruz",
		Email:    "juan@example.com",
		Password: "$argon2id$...",
		UserType: UserTypeResident,
	}
	m := u.Sanitized()
	assert.NotContains(t, m, "password")
	assert.Equal(t, "juan@example.com", m["email"])
	// Optional empty fields are omitted entirely.
	assert.NotContains(t, m, "mobile_number")
	assert.NotContains(t, m, "barangay_clearance")
}
