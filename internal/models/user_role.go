package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names stored in the user_roles table
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserRole grants a role to an identity-provider user (PostgreSQL)
type UserRole struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_user_role"`
	Email     string    `json:"email" gorm:"index"`
	Role      string    `json:"role" gorm:"size:20;uniqueIndex:idx_user_role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
