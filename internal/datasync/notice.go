package datasync

import (
	"sync"

	"github.com/sedp-portal/backend/internal/models"
)

// Notifier receives user-facing status messages
type Notifier interface {
	Notify(notice models.Notice)
}

// NoticeRecorder collects notices so they can be returned with a response
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []models.Notice
}

func (r *NoticeRecorder) Notify(notice models.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Notices returns the notices recorded so far, oldest first
func (r *NoticeRecorder) Notices() []models.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

func success(title, description string) models.Notice {
	return models.Notice{Title: title, Description: description, Variant: models.NoticeDefault}
}

func failure(title, description string) models.Notice {
	return models.Notice{Title: title, Description: description, Variant: models.NoticeDestructive}
}

var (
	noticeAuthRequired = failure("Authentication Required", "Please sign in to submit a registration.")
	noticeDenied       = failure("Permission Denied", "You don't have permission to perform this action.")
)
