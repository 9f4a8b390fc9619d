package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token *auth.Token
	err   error
}

func (v stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return v.token, v.err
}

type adminResolver struct {
	admins map[string]bool
}

func (r adminResolver) Anonymous() session.Session { return session.Static{} }

func (r adminResolver) Resolve(ctx context.Context, identity models.Identity) session.Session {
	return session.Static{User: &identity, Admin: r.admins[identity.ID]}
}

func newAuthServer(verifier stubVerifier, resolver adminResolver) *echo.Echo {
	e := echo.New()
	NewAuthHandler(verifier, resolver, "test-secret", time.Hour).RegisterAuthRoutes(e.Group("/api/v1/auth"))
	return e
}

func TestCreateSession_IssuesPortalToken(t *testing.T) {
	verifier := stubVerifier{token: &auth.Token{UID: "admin-1", Claims: map[string]interface{}{"email": "admin@sedp.example"}}}
	e := newAuthServer(verifier, adminResolver{admins: map[string]bool{"admin-1": true}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer firebase-id-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "admin@sedp.example", resp.User.Email)

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@sedp.example", claims.Email)
}

func TestCreateSession_MissingHeader(t *testing.T) {
	e := newAuthServer(stubVerifier{}, adminResolver{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSession_RejectedToken(t *testing.T) {
	e := newAuthServer(stubVerifier{err: errors.New("token expired")}, adminResolver{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer stale")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
