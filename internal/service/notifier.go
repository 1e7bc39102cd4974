package service

import (
	"context"
	"errors"

	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Event is a notification about to be pushed into an account inbox
type Event struct {
	Type        string
	Message     string
	Data        entity.JSON
	OnClickPath string
}

// Notifier appends events to account inboxes. Callers treat failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event Event) error
	NotifyAdmins(ctx context.Context, event Event) error
}

type inboxNotifier struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotifier(log *logrus.Logger, notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) Notifier {
	return &inboxNotifier{
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (n *inboxNotifier) Notify(ctx context.Context, userID uuid.UUID, event Event) error {
	notification := &entity.Notification{
		UserID:      userID,
		Type:        event.Type,
		Message:     event.Message,
		Data:        event.Data,
		OnClickPath: event.OnClickPath,
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		n.log.Warnf("Failed to notify user %s (%s): %+v", userID, event.Type, err)
		return err
	}

	return nil
}

// NotifyAdmins delivers the event to every admin account. It keeps going after a
// failed delivery and returns the joined errors.
func (n *inboxNotifier) NotifyAdmins(ctx context.Context, event Event) error {
	admins, err := n.userRepo.FindByRole(ctx, entity.RoleAdmin)
	if err != nil {
		n.log.Warnf("Failed to find admins for %s: %+v", event.Type, err)
		return err
	}

	var errs []error
	for _, admin := range admins {
		if err := n.Notify(ctx, admin.ID, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
