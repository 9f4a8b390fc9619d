package repositories

import (
	"context"
	"time"

	"github.com/sedp-portal/backend/internal/models"
	"gorm.io/gorm"
)

// PushNotificationRepository defines the interface for push notification operations
type PushNotificationRepository interface {
	List(ctx context.Context) ([]models.PushNotification, error)
	Create(ctx context.Context, notification *models.PushNotification) error
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}

type postgresPushNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresPushNotificationRepository(db *gorm.DB) PushNotificationRepository {
	return &postgresPushNotificationRepository{db: db}
}

func (r *postgresPushNotificationRepository) List(ctx context.Context) ([]models.PushNotification, error) {
	var notifications []models.PushNotification
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *postgresPushNotificationRepository) Create(ctx context.Context, notification *models.PushNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresPushNotificationRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.PushNotification{}).Where("id = ?", id).Update("sent_at", sentAt).Error
}
