package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationStatus is the review state of a registration
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an administrator can assign.
func (s RegistrationStatus) IsDecision() bool {
	return s == RegistrationApproved || s == RegistrationRejected
}

// Registration is a category registration submitted by a user (PostgreSQL)
type Registration struct {
	ID                string             `json:"id" gorm:"type:uuid;primaryKey"`
	FullName          string             `json:"full_name"`
	MobileNumber      string             `json:"mobile_number"`
	WhatsappNumber    string             `json:"whatsapp_number"`
	Address           string             `json:"address"`
	PanchayathDetails string             `json:"panchayath_details"`
	Category          string             `json:"category" gorm:"index"`
	Status            RegistrationStatus `json:"status" gorm:"size:20;default:pending;index"`
	SubmittedAt       time.Time          `json:"submitted_at" gorm:"autoCreateTime;index"`
	ApprovedAt        *time.Time         `json:"approved_at,omitempty"`
	UniqueID          *string            `json:"unique_id,omitempty" gorm:"uniqueIndex"`
	UserID            *string            `json:"user_id,omitempty" gorm:"index"`
}

// BeforeCreate assigns a UUID primary key when the caller did not supply one
func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// NewRegistration is the payload a user submits. Review fields (status, approved_at, unique_id)
// are not part of it; only an admin decision sets them.
type NewRegistration struct {
	FullName          string `json:"full_name" validate:"required,min=2,max=120"`
	MobileNumber      string `json:"mobile_number" validate:"required,min=7,max=20"`
	WhatsappNumber    string `json:"whatsapp_number" validate:"omitempty,min=7,max=20"`
	Address           string `json:"address" validate:"required,max=500"`
	PanchayathDetails string `json:"panchayath_details" validate:"required,max=200"`
	Category          string `json:"category" validate:"required"`
}

// ToRegistration builds the pending row to insert for the given owner
func (n NewRegistration) ToRegistration(ownerID string) *Registration {
	owner := ownerID
	return &Registration{
		FullName:          n.FullName,
		MobileNumber:      n.MobileNumber,
		WhatsappNumber:    n.WhatsappNumber,
		Address:           n.Address,
		PanchayathDetails: n.PanchayathDetails,
		Category:          n.Category,
		Status:            RegistrationPending,
		UserID:            &owner,
	}
}

// UpdateRegistrationStatusRequest defines the request body for an admin decision
type UpdateRegistrationStatusRequest struct {
	Status   RegistrationStatus `json:"status" validate:"required,oneof=approved rejected"`
	UniqueID string             `json:"unique_id,omitempty" validate:"omitempty,max=64"`
}
