package router

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/adminsetup"
	"github.com/sedp-portal/backend/internal/datasync"
	"github.com/sedp-portal/backend/internal/handlers"
	"github.com/sedp-portal/backend/internal/middleware"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/session"
	"gorm.io/gorm"
)

// Dependencies are the wired services the routes need
type Dependencies struct {
	Repositories datasync.Repositories
	HookOptions  []datasync.Option
	Sessions     *session.Manager
	Verifier     middleware.TokenVerifier
	JWTSecret    string
	JWTTTL       time.Duration
}

// Migrate creates or updates the PostgreSQL tables
func Migrate(pgdb *gorm.DB) error {
	err := pgdb.AutoMigrate(
		&models.Registration{},
		&models.Category{},
		&models.Panchayath{},
		&models.Announcement{},
		&models.PushNotification{},
		&models.UserRole{},
	)
	if err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", handlers.HealthCheck)

	hooks := handlers.NewHookFactory(deps.Repositories, deps.HookOptions...)

	// --- Token exchange (requires a Firebase ID token) ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(deps.Verifier, deps.Sessions, deps.JWTSecret, deps.JWTTTL)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Portal routes (optional portal JWT, anonymous otherwise) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret, deps.Sessions))

	handlers.NewDataHandler(hooks).RegisterDataRoutes(api)
	handlers.NewRegistrationHandler(hooks).RegisterRegistrationRoutes(api)
	handlers.NewCategoryHandler(hooks).RegisterCategoryRoutes(api)
	handlers.NewNotificationHandler(hooks).RegisterNotificationRoutes(api)
	log.Println("Portal routes configured.")

	setup := adminsetup.New(deps.Sessions.PrimaryAdminEmail())
	handlers.NewAdminSetupHandler(setup, deps.Sessions).RegisterAdminSetupRoutes(api)
	log.Println("Admin setup routes configured.")

	log.Println("All routes configured.")
}
