package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/brgykonek/brgykonek-backend/internal/handlers"
	"github.com/brgykonek/brgykonek-backend/internal/middleware"
)

// SetupRoutes registers the API surface on the router.
func SetupRoutes(r *chi.Mux, authn *middleware.Authenticator, authH *handlers.AuthHandler, adminH *handlers.AdminHandler, uploadH *handlers.UploadHandler) {
	// Auth routes
	r.Post("/api/auth/register", authH.Register)
	r.Post("/api/auth/login", authH.Login)
	r.Post("/api/auth/request-otp", authH.RequestOTP)
	r.Post("/api/auth/verify-otp", authH.VerifyOTP)
	r.Post("/api/auth/reset-password", authH.ResetPassword)

	// Profile routes (authenticated)
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Get("/api/auth/my-profile", authH.MyProfile)
		r.Put("/api/auth/my-profile", authH.UpdateMyProfile)
		r.Post("/api/upload", uploadH.UploadFile)
	})

	// Administrator routes
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Use(authn.RequireAdmin)
		r.Get("/api/administrator/users", adminH.ListUsers)
		r.Get("/api/administrator/users/{id}", adminH.GetUser)
		r.Put("/api/administrator/users/{id}", adminH.UpdateUser)
		r.Put("/api/administrator/users/{id}/password", adminH.ChangePassword)
		r.Delete("/api/administrator/users/{id}", adminH.DeleteUser)
	})
}
