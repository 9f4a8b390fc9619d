package repositories

import (
	"context"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	UpdateImage(ctx context.Context, name, imageURL string) error
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// List retrieves all categories ordered by name
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateImage sets the image of the category with the given name
func (r *PostgresCategoryRepository) UpdateImage(ctx context.Context, name, imageURL string) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Update("image_url", imageURL).Error
}
