package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/brgykonek/brgykonek-backend/internal/auth"
	"github.com/brgykonek/brgykonek-backend/internal/config"
	"github.com/brgykonek/brgykonek-backend/internal/database"
	"github.com/brgykonek/brgykonek-backend/internal/handlers"
	"github.com/brgykonek/brgykonek-backend/internal/mailer"
	"github.com/brgykonek/brgykonek-backend/internal/middleware"
	"github.com/brgykonek/brgykonek-backend/internal/routes"
	"github.com/brgykonek/brgykonek-backend/internal/services"
	"github.com/brgykonek/brgykonek-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Fail fast on unusable configuration (e.g. missing JWT secret)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatal("Failed to initialize token manager: ", err)
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	mongoDB, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer mongoDB.Disconnect()

	users := store.NewUserStore(mongoDB.DB)
	otps := store.NewOTPStore(mongoDB.DB)

	// Ensure indexes (unique email, single active OTP per email+purpose)
	indexCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(indexCtx); err != nil {
		log.Fatal("Failed to ensure user indexes: ", err)
	}
	if err := otps.EnsureIndexes(indexCtx); err != nil {
		log.Fatal("Failed to ensure OTP indexes: ", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	// Connect to Redis (rate limiting)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer redisClient.Close()

	// Initialize Cloudinary service (optional; uploads disabled without it)
	var uploads *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploads, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// OTP notifier: SMTP in production, log-only when unconfigured
	var notifier mailer.Notifier
	if cfg.EmailUser != "" && cfg.EmailPass != "" {
		notifier = mailer.NewSMTPMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass)
		log.Println("✅ SMTP mailer configured")
	} else {
		notifier = &mailer.LogMailer{Printf: log.Printf}
		log.Println("Warning: EMAIL_USER/EMAIL_PASS not set. OTP codes will be logged, not emailed")
	}

	authService := services.NewAuthService(users, otps, tokens, notifier)
	adminService := services.NewAdminService(users)

	authn := middleware.NewAuthenticator(tokens, users)
	authHandler := handlers.NewAuthHandler(authService, uploads)
	adminHandler := handlers.NewAdminHandler(adminService)
	uploadHandler := handlers.NewUploadHandler(uploads)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RateLimit(redisClient))

	// Stricter per-IP limit on credential/OTP guessing endpoints
	loginLimiter := middleware.NewPathLimiter(5*time.Second, 2,
		"/api/auth/login",
		"/api/auth/verify-otp",
		"/api/auth/reset-password",
	)
	r.Use(loginLimiter.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authn, authHandler, adminHandler, uploadHandler)

	log.Printf("🚀 BrgyKonek backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
