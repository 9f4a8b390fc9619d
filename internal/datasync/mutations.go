package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sedp-portal/backend/internal/models"
)

// CreateRegistration submits a registration owned by the signed-in user. It returns nil on any
// failure, after emitting a notice.
func (h *Hook) CreateRegistration(ctx context.Context, in models.NewRegistration) *models.Registration {
	user := h.session.CurrentUser()
	if user == nil {
		h.notifier.Notify(noticeAuthRequired)
		return nil
	}

	registration := in.ToRegistration(user.ID)
	if err := h.repos.Registrations.Create(ctx, registration); err != nil {
		h.fail("creating registration", err, "Failed to submit registration. Please try again.")
		return nil
	}

	h.notifier.Notify(success("Registration Submitted", "Your registration has been submitted successfully."))
	h.FetchData(ctx)
	return registration
}

// UpdateRegistrationStatus approves or rejects a registration and stamps approved_at. uniqueID is
// stored only when non-empty.
func (h *Hook) UpdateRegistrationStatus(ctx context.Context, id string, status models.RegistrationStatus, uniqueID string) bool {
	if !h.session.IsAdmin() {
		h.notifier.Notify(noticeDenied)
		return false
	}
	if !status.IsDecision() {
		h.fail("updating registration", fmt.Errorf("invalid registration status %q", status), "")
		return false
	}

	var unique *string
	if uniqueID != "" {
		unique = &uniqueID
	}
	if err := h.repos.Registrations.UpdateStatus(ctx, id, status, h.now().UTC(), unique); err != nil {
		h.fail("updating registration", err, "Failed to update registration. Please try again.")
		return false
	}

	h.notifier.Notify(success("Registration Updated", fmt.Sprintf("Registration has been %s.", status)))
	h.FetchData(ctx)
	return true
}

// DeleteRegistration removes a registration
func (h *Hook) DeleteRegistration(ctx context.Context, id string) bool {
	if !h.session.IsAdmin() {
		h.notifier.Notify(noticeDenied)
		return false
	}

	if err := h.repos.Registrations.Delete(ctx, id); err != nil {
		h.fail("deleting registration", err, "Failed to delete registration. Please try again.")
		return false
	}

	h.notifier.Notify(success("Registration Deleted", "Registration has been deleted successfully."))
	h.FetchData(ctx)
	return true
}

// UpdateCategoryImage points the named category at imageURL
func (h *Hook) UpdateCategoryImage(ctx context.Context, categoryName, imageURL string) bool {
	if !h.session.IsAdmin() {
		h.notifier.Notify(noticeDenied)
		return false
	}
	return h.setCategoryImage(ctx, categoryName, imageURL)
}

// UploadCategoryImage stores r in object storage and then updates the category like
// UpdateCategoryImage does
func (h *Hook) UploadCategoryImage(ctx context.Context, categoryName, filename string, r io.Reader) bool {
	if !h.session.IsAdmin() {
		h.notifier.Notify(noticeDenied)
		return false
	}
	if h.images == nil {
		h.fail("uploading category image", errors.New("image storage is not configured"), "")
		return false
	}
	if !safeObjectSegment(categoryName) {
		h.fail("uploading category image", fmt.Errorf("invalid category name %q", categoryName), "")
		return false
	}

	url, err := h.images.Upload(ctx, "categories/"+categoryName, filename, r)
	if err != nil {
		h.fail("uploading category image", err, "Failed to upload category image. Please try again.")
		return false
	}
	return h.setCategoryImage(ctx, categoryName, url)
}

// safeObjectSegment reports whether name can be used as a single storage path segment
func safeObjectSegment(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func (h *Hook) setCategoryImage(ctx context.Context, categoryName, imageURL string) bool {
	if err := h.repos.Categories.UpdateImage(ctx, categoryName, imageURL); err != nil {
		h.fail("updating category image", err, "Failed to update category image. Please try again.")
		return false
	}

	h.notifier.Notify(success("Image Updated", "Category image has been updated successfully."))
	h.FetchData(ctx)
	return true
}

// CreateNotification stores a push notification and, unless it is scheduled for later, delivers
// it right away. A delivery failure keeps the row unsent and is reported in a notice.
func (h *Hook) CreateNotification(ctx context.Context, in models.NewNotification) *models.PushNotification {
	if !h.session.IsAdmin() {
		h.notifier.Notify(noticeDenied)
		return nil
	}
	if !in.TargetAudience.Valid() {
		h.fail("creating notification", fmt.Errorf("invalid target audience %q", in.TargetAudience), "")
		return nil
	}

	notification := &models.PushNotification{
		Title:          in.Title,
		Content:        in.Content,
		TargetAudience: in.TargetAudience,
		ScheduledAt:    in.ScheduledAt,
		IsActive:       true,
	}
	if in.TargetValue != "" {
		value := in.TargetValue
		notification.TargetValue = &value
	}

	if err := h.repos.Notifications.Create(ctx, notification); err != nil {
		h.fail("creating notification", err, "Failed to create notification. Please try again.")
		return nil
	}

	now := h.now().UTC()
	switch {
	case notification.ScheduledAt != nil && notification.ScheduledAt.After(now):
		h.notifier.Notify(success("Notification Scheduled", "Notification will be sent at the scheduled time."))
	case h.dispatcher == nil:
		log.Printf("No dispatcher configured, notification %s left unsent", notification.ID)
		h.notifier.Notify(success("Notification Created", "Notification has been saved."))
	default:
		h.deliver(ctx, notification, now)
	}

	h.FetchData(ctx)
	return notification
}

func (h *Hook) deliver(ctx context.Context, notification *models.PushNotification, now time.Time) {
	if err := h.dispatcher.Dispatch(ctx, notification); err != nil {
		log.Printf("Error dispatching notification %s: %v", notification.ID, err)
		h.notifier.Notify(failure("Delivery Failed", err.Error()))
		return
	}
	if err := h.repos.Notifications.MarkSent(ctx, notification.ID, now); err != nil {
		log.Printf("Error marking notification %s sent: %v", notification.ID, err)
	}
	notification.SentAt = &now
	h.notifier.Notify(success("Notification Sent", "Notification has been sent successfully."))
}
