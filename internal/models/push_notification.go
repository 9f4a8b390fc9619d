package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetAudience selects who receives a push notification
type TargetAudience string

const (
	AudienceAll        TargetAudience = "all"
	AudienceCategory   TargetAudience = "category"
	AudiencePanchayath TargetAudience = "panchayath"
	AudienceAdmin      TargetAudience = "admin"
)

// Valid reports whether a is one of the four known audiences.
func (a TargetAudience) Valid() bool {
	switch a {
	case AudienceAll, AudienceCategory, AudiencePanchayath, AudienceAdmin:
		return true
	}
	return false
}

// PushNotification is an admin-authored push message (PostgreSQL)
type PushNotification struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	TargetAudience TargetAudience `json:"target_audience" gorm:"size:20"`
	TargetValue    *string        `json:"target_value,omitempty"`
	ScheduledAt    *time.Time     `json:"scheduled_at,omitempty"`
	SentAt         *time.Time     `json:"sent_at,omitempty"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index"`
}

func (n *PushNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NewNotification defines the request body for authoring a push notification
type NewNotification struct {
	Title          string         `json:"title" validate:"required,max=120"`
	Content        string         `json:"content" validate:"required,max=1000"`
	TargetAudience TargetAudience `json:"target_audience" validate:"required,oneof=all category panchayath admin"`
	TargetValue    string         `json:"target_value,omitempty" validate:"required_if=TargetAudience category,required_if=TargetAudience panchayath"`
	ScheduledAt    *time.Time     `json:"scheduled_at,omitempty"`
}
