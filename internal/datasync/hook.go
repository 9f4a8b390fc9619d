// Package datasync keeps a session-scoped snapshot of the portal's collections in step with the
// backend. Reads fail soft per collection; every successful mutation is followed by a full re-fetch.
package datasync

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/repositories"
	"github.com/sedp-portal/backend/internal/session"
)

// Repositories groups the stores the hook reads and writes
type Repositories struct {
	Registrations repositories.RegistrationRepository
	Categories    repositories.CategoryRepository
	Panchayaths   repositories.PanchayathRepository
	Announcements repositories.AnnouncementRepository
	PhotoGallery  repositories.PhotoGalleryRepository
	Notifications repositories.PushNotificationRepository
}

// ImageStore uploads category images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error)
}

// Dispatcher delivers a push notification to its audience
type Dispatcher interface {
	Dispatch(ctx context.Context, notification *models.PushNotification) error
}

// State is the snapshot of every collection
type State struct {
	Registrations []models.Registration     `json:"registrations"`
	Categories    []models.Category         `json:"categories"`
	Panchayaths   []models.Panchayath       `json:"panchayaths"`
	Announcements []models.Announcement     `json:"announcements"`
	PhotoGallery  []models.PhotoGalleryItem `json:"photo_gallery"`
	Notifications []models.PushNotification `json:"notifications"`
	Loading       bool                      `json:"loading"`
}

// Hook is bound to one session for its lifetime
type Hook struct {
	repos      Repositories
	session    session.Session
	notifier   Notifier
	images     ImageStore
	dispatcher Dispatcher
	now        func() time.Time

	mu        sync.Mutex
	state     State
	started   uint64
	published uint64
	inFlight  int
}

// Option configures a Hook
type Option func(*Hook)

func WithImageStore(store ImageStore) Option {
	return func(h *Hook) { h.images = store }
}

func WithDispatcher(d Dispatcher) Option {
	return func(h *Hook) { h.dispatcher = d }
}

func WithClock(now func() time.Time) Option {
	return func(h *Hook) { h.now = now }
}

// New creates a Hook for sess. Notices go to notifier.
func New(repos Repositories, sess session.Session, notifier Notifier, opts ...Option) *Hook {
	h := &Hook{
		repos:    repos,
		session:  sess,
		notifier: notifier,
		now:      time.Now,
		state: State{
			Registrations: []models.Registration{},
			Categories:    []models.Category{},
			Panchayaths:   []models.Panchayath{},
			Announcements: []models.Announcement{},
			PhotoGallery:  []models.PhotoGalleryItem{},
			Notifications: []models.PushNotification{},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Snapshot returns the current state
func (h *Hook) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Loading = h.inFlight > 0
	return s
}

// Loading reports whether a fetch is running
func (h *Hook) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inFlight > 0
}

// Refresh re-reads every collection
func (h *Hook) Refresh(ctx context.Context) {
	h.FetchData(ctx)
}

// FetchData reads every collection visible to the session. A failed query leaves its collection
// at the previous value and never stops the others. When fetches overlap, the one started last
// determines the published state.
func (h *Hook) FetchData(ctx context.Context) {
	h.mu.Lock()
	h.started++
	gen := h.started
	h.inFlight++
	next := h.state
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inFlight--
		h.mu.Unlock()
	}()

	user := h.session.CurrentUser()
	admin := h.session.IsAdmin()

	if categories, err := h.repos.Categories.List(ctx); err != nil {
		log.Printf("Categories fetch error: %v", err)
	} else {
		next.Categories = nonNil(categories)
	}

	if panchayaths, err := h.repos.Panchayaths.List(ctx); err != nil {
		log.Printf("Panchayaths fetch error: %v", err)
	} else {
		next.Panchayaths = nonNil(panchayaths)
	}

	if announcements, err := h.repos.Announcements.List(ctx, !admin); err != nil {
		log.Printf("Announcements fetch error: %v", err)
	} else {
		next.Announcements = nonNil(announcements)
	}

	if gallery, err := h.repos.PhotoGallery.List(ctx); err != nil {
		log.Printf("Gallery fetch error: %v", err)
	} else {
		next.PhotoGallery = nonNil(gallery)
	}

	if user != nil {
		var owner *string
		if !admin {
			owner = &user.ID
		}
		if registrations, err := h.repos.Registrations.List(ctx, owner); err != nil {
			log.Printf("Registrations fetch error: %v", err)
			if !strings.Contains(err.Error(), "access") {
				h.notifier.Notify(failure("Error", "Failed to load registration data. Please try again."))
			}
		} else {
			next.Registrations = nonNil(registrations)
		}

		if admin {
			if notifications, err := h.repos.Notifications.List(ctx); err != nil {
				log.Printf("Notifications fetch error: %v", err)
			} else {
				next.Notifications = validAudience(notifications)
			}
		}
	}

	h.mu.Lock()
	if gen > h.published {
		h.state = next
		h.published = gen
	}
	h.mu.Unlock()
}

// validAudience drops rows whose target_audience is not one of the known values
func validAudience(rows []models.PushNotification) []models.PushNotification {
	out := make([]models.PushNotification, 0, len(rows))
	for _, n := range rows {
		if n.TargetAudience.Valid() {
			out = append(out, n)
		}
	}
	return out
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// fail logs err and surfaces the backend's message to the user
func (h *Hook) fail(action string, err error, fallback string) {
	log.Printf("Error %s: %v", action, err)
	description := err.Error()
	if description == "" {
		description = fallback
	}
	h.notifier.Notify(failure("Error", description))
}
