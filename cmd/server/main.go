package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/datasync"
	"github.com/sedp-portal/backend/internal/media"
	"github.com/sedp-portal/backend/internal/notifications"
	"github.com/sedp-portal/backend/internal/repositories"
	"github.com/sedp-portal/backend/internal/router"
	"github.com/sedp-portal/backend/internal/session"
	"github.com/sedp-portal/backend/pkg/config"
	"github.com/sedp-portal/backend/pkg/firebase"
	"github.com/sedp-portal/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing databases: %v", err)
		}
	}()

	if err := router.Migrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	repos := datasync.Repositories{
		Registrations: repositories.NewPostgresRegistrationRepository(db.Postgres),
		Categories:    repositories.NewPostgresCategoryRepository(db.Postgres),
		Panchayaths:   repositories.NewPostgresPanchayathRepository(db.Postgres),
		Announcements: repositories.NewPostgresAnnouncementRepository(db.Postgres),
		PhotoGallery:  repositories.NewMongoPhotoGalleryRepository(db.MongoDatabase()),
		Notifications: repositories.NewPostgresPushNotificationRepository(db.Postgres),
	}

	sessions := session.NewManager(
		firebaseApp.AuthClient,
		repositories.NewPostgresUserRoleRepository(db.Postgres),
		session.PrimaryAdmin{Email: cfg.PrimaryAdminEmail, Password: cfg.PrimaryAdminPassword},
	)

	uploader := media.NewUploader(media.BucketWriter{Bucket: firebaseApp.Bucket}, media.PublicBaseURL(firebaseApp.BucketName))
	dispatcher := notifications.NewDispatcher(firebaseApp.MessagingClient)

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Repositories: repos,
		HookOptions:  []datasync.Option{datasync.WithImageStore(uploader), datasync.WithDispatcher(dispatcher)},
		Sessions:     sessions,
		Verifier:     firebaseApp.AuthClient,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTTTL,
	})

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
