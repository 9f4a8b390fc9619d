package repositories

import (
	"context"
	"time"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
)

// RegistrationRepository defines the interface for registration data operations
type RegistrationRepository interface {
	// List returns registrations newest first. A nil ownerID returns every row.
	List(ctx context.Context, ownerID *string) ([]models.Registration, error)
	Create(ctx context.Context, registration *models.Registration) error
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus, approvedAt time.Time, uniqueID *string) error
	Delete(ctx context.Context, id string) error
}

// PostgresRegistrationRepository implements RegistrationRepository for PostgreSQL
type PostgresRegistrationRepository struct {
	db *gorm.DB
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(db *gorm.DB) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{db: db}
}

func registrationQuery(db *gorm.DB, ownerID *string) *gorm.DB {
	q := db.Model(&models.Registration{}).Order("submitted_at DESC")
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	return q
}

// List retrieves registrations, optionally scoped to one owner
func (r *PostgresRegistrationRepository) List(ctx context.Context, ownerID *string) ([]models.Registration, error) {
	var registrations []models.Registration
	if err := registrationQuery(r.db.WithContext(ctx), ownerID).Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

// Create inserts a registration and fills in the generated columns
func (r *PostgresRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

// UpdateStatus records an admin decision. uniqueID is left untouched when nil.
func (r *PostgresRegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus, approvedAt time.Time, uniqueID *string) error {
	updates := map[string]interface{}{
		"status":      status,
		"approved_at": approvedAt,
	}
	if uniqueID != nil {
		updates["unique_id"] = *uniqueID
	}
	return r.db.WithContext(ctx).Model(&models.Registration{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a registration by ID
func (r *PostgresRegistrationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Registration{}).Error
}
