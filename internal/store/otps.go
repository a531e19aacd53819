package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brgykonek/brgykonek-backend/internal/models"
)

const otpsCollection = "otps"

// OTPStore persists one-time codes in the otps collection.
type OTPStore struct {
	col *mongo.Collection
}

func NewOTPStore(db *mongo.Database) *OTPStore {
	return &OTPStore{col: db.Collection(otpsCollection)}
}

// EnsureIndexes creates the unique (email, purpose) index backing the
// single-active-code invariant, plus a TTL index so expired codes are
// eventually reaped by the server.
func (s *OTPStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "purpose", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_email_purpose_unique"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(3600).SetName("idx_expires_at_ttl"),
		},
	}
	for _, m := range indexes {
		if _, err := s.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Replace installs a new code for (email, purpose), displacing any previous
// one in a single upsert so two concurrent requests cannot both survive.
func (s *OTPStore) Replace(ctx context.Context, email, purpose, code string, expiresAt time.Time) (*models.OTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	otp := &models.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: expiresAt.UTC(),
		Verified:  false,
		CreatedAt: time.Now().UTC(),
	}

	filter := bson.M{"email": email, "purpose": purpose}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.OTP
	err := s.col.FindOneAndReplace(ctx, filter, otp, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindActive returns the stored code matching (email, code, purpose),
// regardless of its verified or expiry state; the caller distinguishes
// already-used from expired.
func (s *OTPStore) FindActive(ctx context.Context, email, code, purpose string) (*models.OTP, error) {
	filter := bson.M{
		"email":   strings.ToLower(strings.TrimSpace(email)),
		"code":    code,
		"purpose": purpose,
	}
	var otp models.OTP
	if err := s.col.FindOne(ctx, filter).Decode(&otp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

// MarkVerified consumes a code. The verified=false guard in the filter makes
// consumption single-shot even under concurrent verification attempts.
func (s *OTPStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "verified": false},
		bson.M{"$set": bson.M{"verified": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllFor removes every code held for (email, purpose).
func (s *OTPStore) DeleteAllFor(ctx context.Context, email, purpose string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{
		"email":   strings.ToLower(strings.TrimSpace(email)),
		"purpose": purpose,
	})
	return err
}
