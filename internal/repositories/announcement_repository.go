package repositories

import (
	"context"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
)

// AnnouncementRepository reads announcements
type AnnouncementRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Announcement, error)
}

type postgresAnnouncementRepository struct {
	db *gorm.DB
}

func NewPostgresAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

func announcementQuery(db *gorm.DB, activeOnly bool) *gorm.DB {
	q := db.Model(&models.Announcement{}).Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	return q
}

func (r *postgresAnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := announcementQuery(r.db.WithContext(ctx), activeOnly).Find(&announcements).Error
	return announcements, err
}
