// Package session models the signed-in identity and its admin flag as an explicit value passed to
// the code that needs it, together with the two privileged role operations backed by the identity
// provider.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/repositories"
)

var (
	ErrPrimaryAdminNotConfigured = errors.New("primary admin credentials are not configured")
	ErrEmailRequired             = errors.New("email is required")
)

// Session is the caller's identity. Admin-only operations check IsAdmin before touching storage.
type Session interface {
	CurrentUser() *models.Identity
	IsAdmin() bool
	MakeUserAdmin(ctx context.Context, email string) error
	InitializeAdminUser(ctx context.Context) error
}

// AuthClient is the subset of the Firebase auth client the role operations need
type AuthClient interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

// PrimaryAdmin is the account created by InitializeAdminUser
type PrimaryAdmin struct {
	Email    string
	Password string
}

// Manager resolves sessions and performs role changes
type Manager struct {
	auth    AuthClient
	roles   repositories.UserRoleRepository
	primary PrimaryAdmin
}

// NewManager creates a new Manager
func NewManager(authClient AuthClient, roles repositories.UserRoleRepository, primary PrimaryAdmin) *Manager {
	primary.Email = strings.ToLower(strings.TrimSpace(primary.Email))
	return &Manager{auth: authClient, roles: roles, primary: primary}
}

// PrimaryAdminEmail returns the configured primary admin address
func (m *Manager) PrimaryAdminEmail() string {
	return m.primary.Email
}

// Anonymous returns a session with no identity
func (m *Manager) Anonymous() Session {
	return &userSession{manager: m}
}

// Resolve builds the session for a verified identity. A failed role lookup degrades to a
// non-admin session rather than failing the request.
func (m *Manager) Resolve(ctx context.Context, identity models.Identity) Session {
	admin, err := m.roles.HasRole(ctx, identity.ID, models.RoleAdmin)
	if err != nil {
		log.Printf("Role lookup failed for %s: %v", identity.ID, err)
		admin = false
	}
	return &userSession{manager: m, user: &identity, admin: admin}
}

// HasAdmins reports whether any admin role has been granted yet
func (m *Manager) HasAdmins(ctx context.Context) (bool, error) {
	count, err := m.roles.CountByRole(ctx, models.RoleAdmin)
	return count > 0, err
}

// MakeUserAdmin grants the admin role to the provider account with the given email
func (m *Manager) MakeUserAdmin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}

	user, err := m.auth.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", email, err)
	}
	return m.grantAdmin(ctx, user.UID, email)
}

// InitializeAdminUser creates the primary admin account when it does not exist yet and grants it
// the admin role
func (m *Manager) InitializeAdminUser(ctx context.Context) error {
	if m.primary.Email == "" || m.primary.Password == "" {
		return ErrPrimaryAdminNotConfigured
	}

	user, err := m.auth.GetUserByEmail(ctx, m.primary.Email)
	if err != nil {
		if !auth.IsUserNotFound(err) {
			return fmt.Errorf("looking up primary admin: %w", err)
		}
		params := (&auth.UserToCreate{}).
			Email(m.primary.Email).
			Password(m.primary.Password).
			EmailVerified(true)
		user, err = m.auth.CreateUser(ctx, params)
		if err != nil {
			return fmt.Errorf("creating primary admin: %w", err)
		}
		log.Printf("Created primary admin account %s", m.primary.Email)
	}
	return m.grantAdmin(ctx, user.UID, m.primary.Email)
}

func (m *Manager) grantAdmin(ctx context.Context, uid, email string) error {
	if err := m.roles.Grant(ctx, &models.UserRole{UserID: uid, Email: email, Role: models.RoleAdmin}); err != nil {
		return fmt.Errorf("granting admin role: %w", err)
	}
	if err := m.auth.SetCustomUserClaims(ctx, uid, map[string]interface{}{"admin": true}); err != nil {
		return fmt.Errorf("setting admin claim: %w", err)
	}
	log.Printf("Granted admin role to %s", email)
	return nil
}

type userSession struct {
	manager *Manager
	user    *models.Identity
	admin   bool
}

func (s *userSession) CurrentUser() *models.Identity { return s.user }

func (s *userSession) IsAdmin() bool { return s.user != nil && s.admin }

func (s *userSession) MakeUserAdmin(ctx context.Context, email string) error {
	return s.manager.MakeUserAdmin(ctx, email)
}

func (s *userSession) InitializeAdminUser(ctx context.Context) error {
	return s.manager.InitializeAdminUser(ctx)
}

// Static is a fixed session, used where no identity provider is involved
type Static struct {
	User  *models.Identity
	Admin bool
}

func (s Static) CurrentUser() *models.Identity { return s.User }
func (s Static) IsAdmin() bool                 { return s.User != nil && s.Admin }

func (s Static) MakeUserAdmin(ctx context.Context, email string) error {
	return errors.New("static session cannot change roles")
}

func (s Static) InitializeAdminUser(ctx context.Context) error {
	return errors.New("static session cannot change roles")
}
