package repository

import (
	"context"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID, seen bool) ([]entity.Notification, error)
	MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
