package usecase

import (
	"context"
	"strings"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetNotifications(ctx context.Context, userID uuid.UUID) (*dto.NotificationInboxResponse, error)
	MarkAllNotificationsSeen(ctx context.Context, userID uuid.UUID) error
	DeleteAllNotifications(ctx context.Context, userID uuid.UUID) error
}

type userUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	auditService     service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:              log,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		auditService:     auditService,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := converter.UserToResponse(user)

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	rows, err := u.userRepo.UpdateProfile(ctx, user.ID, user.Name, user.Phone)
	if err != nil {
		u.log.Warnf("Failed to update user %s: %+v", userID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	if fresh, err := u.userRepo.FindByID(ctx, userID); err == nil && fresh != nil {
		user = fresh
	}

	updated := converter.UserToResponse(user)
	_ = u.auditService.LogUpdate(ctx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), old, updated)

	return updated, nil
}

// GetNotifications returns the inbox split into unread and read entries
func (u *userUsecase) GetNotifications(ctx context.Context, userID uuid.UUID) (*dto.NotificationInboxResponse, error) {
	if _, err := u.findUser(ctx, userID); err != nil {
		return nil, err
	}

	unseen, err := u.notificationRepo.FindByUserID(ctx, userID, false)
	if err != nil {
		u.log.Warnf("Failed to find unseen notifications for %s: %+v", userID, err)
		return nil, err
	}

	seen, err := u.notificationRepo.FindByUserID(ctx, userID, true)
	if err != nil {
		u.log.Warnf("Failed to find seen notifications for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.NotificationInboxResponse{
		Unseen: converter.NotificationsToResponses(unseen),
		Seen:   converter.NotificationsToResponses(seen),
	}, nil
}

func (u *userUsecase) MarkAllNotificationsSeen(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.findUser(ctx, userID); err != nil {
		return err
	}

	if _, err := u.notificationRepo.MarkAllSeen(ctx, userID); err != nil {
		u.log.Warnf("Failed to mark notifications seen for %s: %+v", userID, err)
		return err
	}
	return nil
}

func (u *userUsecase) DeleteAllNotifications(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.findUser(ctx, userID); err != nil {
		return err
	}

	if _, err := u.notificationRepo.DeleteAllByUser(ctx, userID); err != nil {
		u.log.Warnf("Failed to delete notifications for %s: %+v", userID, err)
		return err
	}
	return nil
}

func (u *userUsecase) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
