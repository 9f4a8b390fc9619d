package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the signed-in user as known to the identity provider
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse is returned after a Firebase ID token is exchanged for a portal token
type SessionResponse struct {
	Token   string   `json:"token"`
	User    Identity `json:"user"`
	IsAdmin bool     `json:"is_admin"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// PromoteAdminRequest defines the request body for granting the admin role by email
type PromoteAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}
