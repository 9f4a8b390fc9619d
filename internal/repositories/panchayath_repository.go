package repositories

import (
	"context"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
)

// PanchayathRepository reads panchayath reference data
type PanchayathRepository interface {
	List(ctx context.Context) ([]models.Panchayath, error)
}

type postgresPanchayathRepository struct {
	db *gorm.DB
}

func NewPostgresPanchayathRepository(db *gorm.DB) PanchayathRepository {
	return &postgresPanchayathRepository{db: db}
}

func (r *postgresPanchayathRepository) List(ctx context.Context) ([]models.Panchayath, error) {
	var panchayaths []models.Panchayath
	err := r.db.WithContext(ctx).Order("malayalam_name").Find(&panchayaths).Error
	return panchayaths, err
}
