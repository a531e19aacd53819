package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brgykonek/brgykonek-backend/internal/auth"
	"github.com/brgykonek/brgykonek-backend/internal/models"
	"github.com/brgykonek/brgykonek-backend/internal/services"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// Authenticator verifies bearer tokens and loads the authenticated user for
// downstream handlers.
type Authenticator struct {
	tokens *auth.TokenManager
	users  services.UserStore
}

func NewAuthenticator(tokens *auth.TokenManager, users services.UserStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// RequireAuth rejects requests without a valid Authorization bearer token.
// The user document is re-fetched on every request so revoked or deleted
// accounts stop working immediately.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, err := a.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := a.users.FindByID(r.Context(), userID)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects authenticated requests from non-admin users.
// Must run after RequireAuth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "Administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user stored by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// ContextWithUser is used by handler tests to inject an authenticated user.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
