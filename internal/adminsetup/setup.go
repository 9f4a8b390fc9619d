// Package adminsetup implements the one-time admin bootstrap: initialize the primary admin,
// promote the signed-in user, or promote another account by email.
package adminsetup

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/sedp-portal/backend/internal/session"
)

// ErrBusy is returned while another bootstrap action is running
var ErrBusy = errors.New("an admin setup action is already in progress")

// Status is what the setup screen renders
type Status struct {
	InFlight     bool   `json:"in_flight"`
	Complete     bool   `json:"complete"`
	PrimaryEmail string `json:"primary_email"`
}

// Setup holds the bootstrap state for the process
type Setup struct {
	primaryEmail string

	mu       sync.Mutex
	inFlight bool
	complete bool
}

func New(primaryEmail string) *Setup {
	return &Setup{primaryEmail: strings.ToLower(strings.TrimSpace(primaryEmail))}
}

func (s *Setup) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{InFlight: s.inFlight, Complete: s.complete, PrimaryEmail: s.primaryEmail}
}

// Initialize creates the primary admin. Success always completes setup.
func (s *Setup) Initialize(ctx context.Context, sess session.Session) error {
	return s.run("setting up main admin", true, func() error {
		return sess.InitializeAdminUser(ctx)
	})
}

// MakeSelfAdmin promotes the signed-in user. Without a signed-in user it does nothing.
func (s *Setup) MakeSelfAdmin(ctx context.Context, sess session.Session) error {
	user := sess.CurrentUser()
	if user == nil || user.Email == "" {
		return nil
	}
	return s.run("making self admin", s.isPrimary(user.Email), func() error {
		return sess.MakeUserAdmin(ctx, user.Email)
	})
}

// MakeAdmin promotes the account with the given email. A blank email or a session without a
// signed-in user does nothing.
func (s *Setup) MakeAdmin(ctx context.Context, sess session.Session, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || sess.CurrentUser() == nil {
		return nil
	}
	return s.run("making user admin", s.isPrimary(email), func() error {
		return sess.MakeUserAdmin(ctx, email)
	})
}

func (s *Setup) isPrimary(email string) bool {
	return s.primaryEmail != "" && strings.EqualFold(email, s.primaryEmail)
}

// run executes one privileged call with the in-flight flag held. Failures are logged and returned;
// the state only changes on success.
func (s *Setup) run(action string, completes bool, call func() error) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inFlight = true
	s.mu.Unlock()

	err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		log.Printf("Error %s: %v", action, err)
		return err
	}
	if completes {
		s.complete = true
	}
	return nil
}
