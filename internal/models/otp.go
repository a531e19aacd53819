package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP purposes. A user can hold one active code per (email, purpose) pair.
const (
	OTPPurposeEmailVerification = "email_verification"
	OTPPurposePasswordReset     = "password_reset"
)

// OTPLifetime is how long an issued code stays valid.
const OTPLifetime = 10 * time.Minute

type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"code" json:"-"`
	Purpose   string             `bson:"purpose" json:"purpose"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
// A code checked at exactly ExpiresAt is still valid.
func (o *OTP) Expired(at time.Time) bool {
	return at.After(o.ExpiresAt)
}
