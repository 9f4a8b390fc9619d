package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/session"
)

// SessionKey is the context key holding the caller's session.Session
const SessionKey = "session"

// SessionResolver turns a verified identity into a session
type SessionResolver interface {
	Anonymous() session.Session
	Resolve(ctx context.Context, identity models.Identity) session.Session
}

// JWTAuthMiddleware resolves the caller's session from an optional portal JWT. Requests without an
// Authorization header continue as anonymous; a present but invalid token is rejected.
func JWTAuthMiddleware(jwtSecret string, resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}
			if tokenString == "" {
				c.Set(SessionKey, resolver.Anonymous())
				return next(c)
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			identity := models.Identity{ID: claims.UserID, Email: claims.Email}
			c.Set(SessionKey, resolver.Resolve(c.Request().Context(), identity))

			return next(c)
		}
	}
}

// SessionFrom returns the session set by JWTAuthMiddleware, or nil
func SessionFrom(c echo.Context) session.Session {
	sess, _ := c.Get(SessionKey).(session.Session)
	return sess
}

// bearerToken extracts the token from "Authorization: Bearer <token>". An absent header yields "".
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}
	return parts[1], nil
}
