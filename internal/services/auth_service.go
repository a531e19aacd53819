// Package services holds the application services orchestrating stores,
// token issuance, hashing, and notification.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
	"github.com/brgykonek/brgykonek-backend/internal/mailer"
	"github.com/brgykonek/brgykonek-backend/internal/models"
	"github.com/brgykonek/brgykonek-backend/internal/store"
	"github.com/brgykonek/brgykonek-backend/pkg/utils"
)

// UserStore is the credential store contract the auth service depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, set bson.M, unset []string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

// OTPStore is the one-time-code store contract.
type OTPStore interface {
	Replace(ctx context.Context, email, purpose, code string, expiresAt time.Time) (*models.OTP, error)
	FindActive(ctx context.Context, email, code, purpose string) (*models.OTP, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	DeleteAllFor(ctx context.Context, email, purpose string) error
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration, login, profile management, and the
// OTP lifecycle. All collaborators are injected at construction.
type AuthService struct {
	users    UserStore
	otps     OTPStore
	tokens   TokenIssuer
	notifier mailer.Notifier

	hash   func(password string) (string, error)
	verify func(password, hash string) (bool, error)
	now    func() time.Time
}

func NewAuthService(users UserStore, otps OTPStore, tokens TokenIssuer, notifier mailer.Notifier) *AuthService {
	return &AuthService{
		users:    users,
		otps:     otps,
		tokens:   tokens,
		notifier: notifier,
		hash:     utils.HashPassword,
		verify:   utils.VerifyPassword,
		now:      time.Now,
	}
}

// RegisterInput carries an already-validated registration payload.
type RegisterInput struct {
	Name              string
	Email             string
	Password          string
	MobileNumber      string
	UserType          string
	Address           string
	Birthdate         *time.Time
	BarangayClearance string
}

// AuthResult is returned from Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

// Register creates a new user and issues a session token. A duplicate email
// fails with EmailTaken; the unique index on the store resolves concurrent
// registrations so at most one succeeds.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.EmailTaken()
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.StoreUnavailable(err)
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userType := in.UserType
	if userType == "" {
		userType = models.UserTypeResident
	}

	user := &models.User{
		Name:              in.Name,
		Email:             in.Email,
		Password:          hashed,
		MobileNumber:      in.MobileNumber,
		UserType:          userType,
		Address:           in.Address,
		Birthdate:         in.Birthdate,
		BarangayClearance: in.BarangayClearance,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperrors.EmailTaken()
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	token, err := s.tokens.Issue(created.ID.Hex())
	if err != nil {
		// The user document exists but no session was handed out; the caller
		// can still log in normally. Surface the failure instead of hiding it.
		return nil, err
	}

	return &AuthResult{Token: token, User: created}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same InvalidCredentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	ok, err := s.verify(password, user.Password)
	if err != nil || !ok {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile returns the user for the given ID.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return user, nil
}

// UpdateProfileInput uses pointers for partial-update semantics: a nil field
// is left unchanged, a pointer to the empty string clears the field.
type UpdateProfileInput struct {
	Name              *string
	MobileNumber      *string
	Address           *string
	Birthdate         *time.Time
	BarangayClearance *string
}

// UpdateProfile applies the provided fields to the user's document and
// returns the updated record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	set := bson.M{}
	var unset []string

	if in.Name != nil && *in.Name != "" {
		set["name"] = *in.Name
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

// RequestOTP generates a fresh 6-digit code for the email, replaces any
// previously issued code, and dispatches it through the notifier. A send
// failure is surfaced, not swallowed.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return apperrors.StoreUnavailable(err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiresAt := s.now().Add(models.OTPLifetime)

	if _, err := s.otps.Replace(ctx, user.Email, models.OTPPurposeEmailVerification, code, expiresAt); err != nil {
		return apperrors.StoreUnavailable(err)
	}

	if err := s.notifier.SendOTP(user.Email, code); err != nil {
		return apperrors.NotificationFailure(err)
	}
	return nil
}

// VerifyOTP consumes the code for the email. Order of checks: unknown code,
// already used, expired. A verification arriving at exactly the expiry
// instant still succeeds.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return apperrors.StoreUnavailable(err)
	}

	otp, err := s.otps.FindActive(ctx, email, code, models.OTPPurposeEmailVerification)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.InvalidOTP()
		}
		return apperrors.StoreUnavailable(err)
	}

	if otp.Verified {
		return apperrors.OTPAlreadyUsed()
	}
	if otp.Expired(s.now()) {
		return apperrors.OTPExpired()
	}

	if err := s.otps.MarkVerified(ctx, otp.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost the race against a concurrent verification of the same code.
			return apperrors.OTPAlreadyUsed()
		}
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

// ResetPassword replaces the user's password hash. No session token is
// issued; the caller must log in again with the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return apperrors.StoreUnavailable(err)
	}

	hashed, err := s.hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.Update(ctx, user.ID.Hex(), bson.M{"password": hashed}, nil); err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func applyOptional(set bson.M, unset *[]string, field string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		*unset = append(*unset, field)
		return
	}
	set[field] = *value
}

// generateOTPCode draws a uniformly random 6-digit code from [100000, 999999].
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
