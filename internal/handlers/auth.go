package handlers

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/middleware"
	"github.com/sedp-portal/backend/internal/models"
)

// AuthHandler exchanges Firebase ID tokens for portal session tokens
type AuthHandler struct {
	verifier  middleware.TokenVerifier
	sessions  middleware.SessionResolver
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier middleware.TokenVerifier, sessions middleware.SessionResolver, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		verifier:  verifier,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/session", h.CreateSession, middleware.FirebaseAuthMiddleware(h.verifier))
}

// CreateSession issues a portal JWT for the Firebase user verified by the middleware
func (h *AuthHandler) CreateSession(c echo.Context) error {
	token, ok := c.Get(middleware.FirebaseTokenKey).(*auth.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Firebase token missing")
	}

	email, _ := token.Claims["email"].(string)
	identity := models.Identity{ID: token.UID, Email: email}
	sess := h.sessions.Resolve(c.Request().Context(), identity)

	signed, err := h.generateJWT(identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.SessionResponse{
		Token:   signed,
		User:    identity,
		IsAdmin: sess.IsAdmin(),
	})
}

// generateJWT generates a JWT token for a given identity
func (h *AuthHandler) generateJWT(identity models.Identity) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
