package repositories

import (
	"context"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRoleRepository defines the interface for role lookups and grants
type UserRoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
	Grant(ctx context.Context, role *models.UserRole) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type postgresUserRoleRepository struct {
	db *gorm.DB
}

func NewPostgresUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &postgresUserRoleRepository{db: db}
}

func (r *postgresUserRoleRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).Where("user_id = ? AND role = ?", userID, role).Count(&count).Error
	return count > 0, err
}

// Grant inserts the role; granting an existing role is a no-op
func (r *postgresUserRoleRepository) Grant(ctx context.Context, role *models.UserRole) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(role).Error
}

func (r *postgresUserRoleRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
