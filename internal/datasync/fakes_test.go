package datasync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sedp-portal/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type fakeRegistrations struct {
	rows     []models.Registration
	listErr  error
	writeErr error
	lists    int
	writes   int
}

func (f *fakeRegistrations) List(ctx context.Context, ownerID *string) ([]models.Registration, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Registration
	for _, r := range f.rows {
		if ownerID == nil || (r.UserID != nil && *r.UserID == *ownerID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrations) Create(ctx context.Context, r *models.Registration) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	r.ID = fmt.Sprintf("r-new-%d", f.writes)
	r.SubmittedAt = time.Now()
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakeRegistrations) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus, approvedAt time.Time, uniqueID *string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			at := approvedAt
			f.rows[i].ApprovedAt = &at
			if uniqueID != nil {
				f.rows[i].UniqueID = uniqueID
			}
		}
	}
	return nil
}

func (f *fakeRegistrations) Delete(ctx context.Context, id string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeCategories struct {
	rows     []models.Category
	listErr  error
	writeErr error
	lists    int
	writes   int
}

func (f *fakeCategories) List(ctx context.Context) ([]models.Category, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Category(nil), f.rows...), nil
}

func (f *fakeCategories) UpdateImage(ctx context.Context, name, imageURL string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	for i := range f.rows {
		if f.rows[i].Name == name {
			u := imageURL
			f.rows[i].ImageURL = &u
		}
	}
	return nil
}

type fakePanchayaths struct {
	rows  []models.Panchayath
	err   error
	lists int
}

func (f *fakePanchayaths) List(ctx context.Context) ([]models.Panchayath, error) {
	f.lists++
	return f.rows, f.err
}

type fakeAnnouncements struct {
	rows  []models.Announcement
	err   error
	lists int
}

func (f *fakeAnnouncements) List(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Announcement
	for _, a := range f.rows {
		if !activeOnly || a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeGallery struct {
	rows  []models.PhotoGalleryItem
	err   error
	lists int
}

func (f *fakeGallery) List(ctx context.Context) ([]models.PhotoGalleryItem, error) {
	f.lists++
	return f.rows, f.err
}

type fakeNotifications struct {
	rows     []models.PushNotification
	listErr  error
	writeErr error
	lists    int
	writes   int
	sent     map[string]time.Time
}

func (f *fakeNotifications) List(ctx context.Context) ([]models.PushNotification, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.PushNotification(nil), f.rows...), nil
}

func (f *fakeNotifications) Create(ctx context.Context, n *models.PushNotification) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	n.ID = fmt.Sprintf("n-new-%d", f.writes)
	n.CreatedAt = time.Now()
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotifications) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	if f.sent == nil {
		f.sent = map[string]time.Time{}
	}
	f.sent[id] = sentAt
	return nil
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, prefix, filename, r)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n *models.PushNotification) error {
	return m.Called(ctx, n).Error(0)
}

type fixture struct {
	registrations *fakeRegistrations
	categories    *fakeCategories
	panchayaths   *fakePanchayaths
	announcements *fakeAnnouncements
	gallery       *fakeGallery
	notifications *fakeNotifications
	notices       *NoticeRecorder
}

func strPtr(s string) *string { return &s }

func newFixture() *fixture {
	return &fixture{
		registrations: &fakeRegistrations{rows: []models.Registration{
			{ID: "r1", FullName: "Anjali", Category: "tailoring", Status: models.RegistrationPending, UserID: strPtr("u1")},
			{ID: "r2", FullName: "Biju", Category: "farming", Status: models.RegistrationPending, UserID: strPtr("u2")},
		}},
		categories: &fakeCategories{rows: []models.Category{
			{ID: "c1", Name: "farming", Label: "Farming", ActualFee: 500, OfferFee: 300, HasOffer: true},
			{ID: "c2", Name: "tailoring", Label: "Tailoring", ActualFee: 400},
		}},
		panchayaths: &fakePanchayaths{rows: []models.Panchayath{
			{ID: "p1", MalayalamName: "ആലുവ", EnglishName: "Aluva", District: "Ernakulam"},
		}},
		announcements: &fakeAnnouncements{rows: []models.Announcement{
			{ID: "a1", Title: "Open", IsActive: true},
			{ID: "a2", Title: "Draft", IsActive: false},
		}},
		gallery: &fakeGallery{rows: []models.PhotoGalleryItem{
			{ID: "g1", Title: "Launch", ImageURL: "https://img.example/launch.jpg", Category: "events"},
		}},
		notifications: &fakeNotifications{rows: []models.PushNotification{
			{ID: "n1", Title: "Welcome", TargetAudience: models.AudienceAll, IsActive: true},
			{ID: "n2", Title: "Broken", TargetAudience: "everyone", IsActive: true},
			{ID: "n3", Title: "Admins", TargetAudience: models.AudienceAdmin, IsActive: true},
		}},
		notices: &NoticeRecorder{},
	}
}

func (f *fixture) repos() Repositories {
	return Repositories{
		Registrations: f.registrations,
		Categories:    f.categories,
		Panchayaths:   f.panchayaths,
		Announcements: f.announcements,
		PhotoGallery:  f.gallery,
		Notifications: f.notifications,
	}
}

// fetchCycles counts completed reads of the always-fetched collections
func (f *fixture) fetchCycles() int {
	return f.categories.lists
}
