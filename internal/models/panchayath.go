package models

// Panchayath is local self-government reference data (PostgreSQL, read-only)
type Panchayath struct {
	ID            string  `json:"id" gorm:"type:uuid;primaryKey"`
	MalayalamName string  `json:"malayalam_name" gorm:"index"`
	EnglishName   string  `json:"english_name"`
	Pincode       *string `json:"pincode,omitempty"`
	District      string  `json:"district" gorm:"index"`
}
