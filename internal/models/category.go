package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a registration category with its fee schedule (PostgreSQL)
type Category struct {
	ID        string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string  `json:"name" gorm:"uniqueIndex"`
	Label     string  `json:"label"`
	ActualFee float64 `json:"actual_fee"`
	OfferFee  float64 `json:"offer_fee"`
	HasOffer  bool    `json:"has_offer"`
	ImageURL  *string `json:"image_url,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// UpdateCategoryImageRequest defines the request body for pointing a category at an image
type UpdateCategoryImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}
