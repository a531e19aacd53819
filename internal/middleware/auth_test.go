package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brgykonek/brgykonek-backend/internal/auth"
	"github.com/brgykonek/brgykonek-backend/internal/models"
	"github.com/brgykonek/brgykonek-backend/internal/store"
)

// singleUserStore resolves exactly one user by ID.
type singleUserStore struct {
	user *models.User
}

func (s *singleUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID.Hex() == id {
		return s.user, nil
	}
	return nil, store.ErrNotFound
}

func (s *singleUserStore) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (s *singleUserStore) Insert(context.Context, *models.User) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (s *singleUserStore) Update(context.Context, string, bson.M, []string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (s *singleUserStore) Delete(context.Context, string) error { return store.ErrNotFound }

func (s *singleUserStore) List(context.Context) ([]models.User, error) { return nil, nil }

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Juan dela Cruz",
		Email:    "a@x.com",
		UserType: models.UserTypeResident,
	}
	authn := NewAuthenticator(tokens, &singleUserStore{user: user})

	t.Run("missing header", func(t *testing.T) {
		var hit bool
		rec := httptest.NewRecorder()
		authn.RequireAuth(okHandler(&hit)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})

	t.Run("malformed token", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		authn.RequireAuth(okHandler(&hit)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost, err := tokens.Issue(primitive.NewObjectID().Hex())
		require.NoError(t, err)

		var hit bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+ghost)
		rec := httptest.NewRecorder()
		authn.RequireAuth(okHandler(&hit)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})

	t.Run("valid token loads user into context", func(t *testing.T) {
		token, err := tokens.Issue(user.ID.Hex())
		require.NoError(t, err)

		var got *models.User
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		authn.RequireAuth(inner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, user.Email, got.Email)
	})
}

func TestRequireAdmin(t *testing.T) {
	authn := NewAuthenticator(nil, nil)

	t.Run("resident forbidden", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithUser(req.Context(), &models.User{UserType: models.UserTypeResident}))
		rec := httptest.NewRecorder()
		authn.RequireAdmin(okHandler(&hit)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, hit)
	})

	t.Run("no user forbidden", func(t *testing.T) {
		var hit bool
		rec := httptest.NewRecorder()
		authn.RequireAdmin(okHandler(&hit)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, hit)
	})

	t.Run("admin allowed", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithUser(req.Context(), &models.User{UserType: models.UserTypeAdmin}))
		rec := httptest.NewRecorder()
		authn.RequireAdmin(okHandler(&hit)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, hit)
	})
}
