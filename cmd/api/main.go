// Gatherly API server.
//
// @title Gatherly API
// @version 1.0
// @description Event publishing and RSVP service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"gatherly/config"
	_ "gatherly/docs"
	"gatherly/internal/adapters/auth"
	"gatherly/internal/adapters/email"
	"gatherly/internal/adapters/storage"
	delivery "gatherly/internal/delivery/http"
	"gatherly/internal/delivery/http/controllers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/repository/postgres"
	"gatherly/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	avatarStore, err := storage.NewAvatarStorage(storage.StorageConfig{
		Provider: cfg.StorageProvider,
		S3: storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create avatar storage", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	hasher := auth.NewBcryptHasher(10)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer)
	authService := services.NewAuthService(userRepo, hasher, issuer)
	userService := services.NewUserService(userRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, tagRepo, rsvpRepo, userRepo, emailService, logger, serviceTimeout)
	rsvpService := services.NewRSVPService(eventRepo, rsvpRepo, serviceTimeout)
	profileService := services.NewProfileService(profileRepo, avatarStore, serviceTimeout)

	limiter := middleware.NewRateLimiter(5, 10)
	mux := delivery.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewUserController(logger, userService),
		controllers.NewEventController(logger, eventService),
		controllers.NewRSVPController(logger, rsvpService),
		controllers.NewProfileController(logger, profileService),
		verifier,
		limiter,
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
