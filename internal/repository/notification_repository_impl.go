package repository

import (
	"context"

	"docspot/internal/domain/entity"
	domainRepo "docspot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domainRepo.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return conn(ctx, r.db).Create(notification).Error
}

// FindByUserID returns the unread (seen=false) or read (seen=true) inbox in arrival order
func (r *notificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, seen bool) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := conn(ctx, r.db).
		Where("user_id = ? AND seen = ?", userID, seen).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}
