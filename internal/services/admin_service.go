package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
	"github.com/brgykonek/brgykonek-backend/internal/models"
	"github.com/brgykonek/brgykonek-backend/internal/store"
	"github.com/brgykonek/brgykonek-backend/pkg/utils"
)

// AdminService implements administrator user management. Profile-field
// updates and password changes are separate operations so hashing never
// depends on the shape of an update payload.
type AdminService struct {
	users UserStore
	hash  func(password string) (string, error)
}

func NewAdminService(users UserStore) *AdminService {
	return &AdminService{
		users: users,
		hash:  utils.HashPassword,
	}
}

// ListUsers returns every user, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return users, nil
}

// GetUser returns a single user by ID.
func (s *AdminService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return user, nil
}

// UpdateUserInput covers the fields an administrator may change. Password is
// deliberately absent; use ChangeUserPassword.
type UpdateUserInput struct {
	Name              *string
	MobileNumber      *string
	UserType          *string
	Address           *string
	Birthdate         *time.Time
	BarangayClearance *string
}

// UpdateUserFields applies a partial update to a user's profile fields.
func (s *AdminService) UpdateUserFields(ctx context.Context, userID string, in UpdateUserInput) (*models.User, error) {
	set := bson.M{}
	var unset []string

	if in.Name != nil && *in.Name != "" {
		set["name"] = *in.Name
	}
	if in.UserType != nil {
		if !models.ValidUserType(*in.UserType) {
			return nil, apperrors.Validation("User type must be either resident, staff, or admin")
		}
		set["user_type"] = *in.UserType
	}
	applyOptional(set, &unset, "mobile_number", in.MobileNumber)
	applyOptional(set, &unset, "address", in.Address)
	applyOptional(set, &unset, "barangay_clearance", in.BarangayClearance)
	if in.Birthdate != nil {
		set["birthdate"] = *in.Birthdate
	}

	updated, err := s.users.Update(ctx, userID, set, unset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return updated, nil
}

// ChangeUserPassword hashes and stores a new password for the user.
func (s *AdminService) ChangeUserPassword(ctx context.Context, userID, newPassword string) (*models.User, error) {
	hashed, err := s.hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	updated, err := s.users.Update(ctx, userID, bson.M{"password": hashed}, nil)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return updated, nil
}

// DeleteUser removes a user document.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return apperrors.StoreUnavailable(err)
	}
	return nil
}
