package models

import "time"

// Announcement is a portal-wide notice; inactive rows are visible to admins only (PostgreSQL)
type Announcement struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Link      *string   `json:"link,omitempty"`
	Category  *string   `json:"category,omitempty"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
