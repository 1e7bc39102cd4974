package service

import (
	"context"
	"io"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, seen bool) ([]entity.Notification, error) {
	args := m.Called(ctx, userID, seen)
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepo) FindAll(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) FindByRole(ctx context.Context, role string) ([]entity.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (int64, error) {
	args := m.Called(ctx, id, name, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string, isDoctor bool) (int64, error) {
	args := m.Called(ctx, id, role, isDoctor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (int64, error) {
	args := m.Called(ctx, id, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditLogRepo) FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepo) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}
