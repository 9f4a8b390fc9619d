package models

import "time"

// PhotoGalleryItem is a gallery image stored in MongoDB
type PhotoGalleryItem struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
