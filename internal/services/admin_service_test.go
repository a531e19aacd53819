package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
	"github.com/brgykonek/brgykonek-backend/internal/models"
)

func newTestAdminService(t *testing.T) (*AdminService, *memUserStore) {
	t.Helper()
	users := newMemUserStore()
	svc := NewAdminService(users)
	svc.hash = func(pw string) (string, error) { return "h:" + pw, nil }
	return svc, users
}

func seedUser(t *testing.T, users *memUserStore, email, userType string) *models.User {
	t.Helper()
	u, err := users.Insert(context.Background(), &models.User{
		Name:     "Seeded User",
		Email:    email,
		Password: "h:secret1",
		UserType: userType,
	})
	require.NoError(t, err)
	return u
}

func TestAdminListUsers(t *testing.T) {
	svc, users := newTestAdminService(t)
	seedUser(t, users, "a@x.com", models.UserTypeResident)
	seedUser(t, users, "b@x.com", models.UserTypeStaff)

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, u := range list {
		assert.NotContains(t, u.Sanitized(), "password")
	}
}

func TestAdminGetUser(t *testing.T) {
	svc, users := newTestAdminService(t)
	seeded := seedUser(t, users, "a@x.com", models.UserTypeResident)

	got, err := svc.GetUser(context.Background(), seeded.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = svc.GetUser(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestAdminUpdateUserFields(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("updates fields, never password", func(t *testing.T) {
		svc, users := newTestAdminService(t)
		seeded := seedUser(t, users, "a@x.com", models.UserTypeResident)

		updated, err := svc.UpdateUserFields(context.Background(), seeded.ID.Hex(), UpdateUserInput{
			Name:     strPtr("Promoted Resident"),
			UserType: strPtr(models.UserTypeStaff),
		})
		require.NoError(t, err)
		assert.Equal(t, "Promoted Resident", updated.Name)
		assert.Equal(t, models.UserTypeStaff, updated.UserType)
		assert.Equal(t, "h:secret1", users.users[seeded.ID.Hex()].Password)
	})

	t.Run("rejects invalid user_type", func(t *testing.T) {
		svc, users := newTestAdminService(t)
		seeded := seedUser(t, users, "a@x.com", models.UserTypeResident)

		_, err := svc.UpdateUserFields(context.Background(), seeded.ID.Hex(), UpdateUserInput{
			UserType: strPtr("mayor"),
		})
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestAdminChangeUserPassword(t *testing.T) {
	svc, users := newTestAdminService(t)
	seeded := seedUser(t, users, "a@x.com", models.UserTypeResident)

	_, err := svc.ChangeUserPassword(context.Background(), seeded.ID.Hex(), "newsecret1")
	require.NoError(t, err)
	assert.Equal(t, "h:newsecret1", users.users[seeded.ID.Hex()].Password)
}

func TestAdminDeleteUser(t *testing.T) {
	svc, users := newTestAdminService(t)
	seeded := seedUser(t, users, "a@x.com", models.UserTypeResident)

	require.NoError(t, svc.DeleteUser(context.Background(), seeded.ID.Hex()))
	assert.Empty(t, users.users)

	err := svc.DeleteUser(context.Background(), seeded.ID.Hex())
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
