package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types recognised by the platform.
const (
	UserTypeResident = "resident"
	UserTypeStaff    = "staff"
	UserTypeAdmin    = "admin"
)

// UserTypes lists every valid user_type value.
var UserTypes = []string{UserTypeResident, UserTypeStaff, UserTypeAdmin}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON

	MobileNumber      string     `bson:"mobile_number,omitempty" json:"mobile_number,omitempty"`
	UserType          string     `bson:"user_type" json:"user_type"`
	Address           string     `bson:"address,omitempty" json:"address,omitempty"`
	Birthdate         *time.Time `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	BarangayClearance string     `bson:"barangay_clearance,omitempty" json:"barangay_clearance,omitempty"`
}

// IsAdmin reports whether the user holds the admin user_type.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// Sanitized returns the externally visible projection of a user.
// The password hash is never included.
func (u *User) Sanitized() map[string]interface{} {
	m := map[string]interface{}{
		"id":         u.ID.Hex(),
		"name":       u.Name,
		"email":      u.Email,
		"user_type":  u.UserType,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
	if u.MobileNumber != "" {
		m["mobile_number"] = u.MobileNumber
	}
	if u.Address != "" {
		m["address"] = u.Address
	}
	if u.Birthdate != nil {
		m["birthdate"] = u.Birthdate
	}
	if u.BarangayClearance != "" {
		m["barangay_clearance"] = u.BarangayClearance
	}
	return m
}

// ValidUserType reports whether t is one of the enumerated user types.
func ValidUserType(t string) bool {
	for _, v := range UserTypes {
		if v == t {
			return true
		}
	}
	return false
}
