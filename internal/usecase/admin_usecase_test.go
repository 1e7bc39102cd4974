package usecase

import (
	"context"
	"testing"
	"time"

	"docspot/internal/domain/entity"
	"docspot/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDoctorStatus_ApproveThenReject(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	admin := h.addUser("root", entity.RoleAdmin)
	owner, doctor := h.addDoctor("bo", entity.DoctorStatusPending)

	resp, err := h.admin.SetDoctorStatus(ctx, admin.ID, doctor.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	account, _ := h.users.FindByID(ctx, owner.ID)
	assert.True(t, account.IsDoctor)
	assert.Equal(t, entity.RoleDoctor, account.Role)

	inbox := h.inbox(owner.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, entity.NotificationDoctorStatus, inbox[0].Type)
	assert.Equal(t, "Your doctor application has been approved", inbox[0].Message)

	_, err = h.admin.SetDoctorStatus(ctx, admin.ID, doctor.ID, "rejected")
	require.NoError(t, err)

	account, _ = h.users.FindByID(ctx, owner.ID)
	assert.False(t, account.IsDoctor)
	assert.Equal(t, entity.RolePatient, account.Role)
	assert.Len(t, h.inbox(owner.ID), 2)
}

func TestSetDoctorStatus_AdminKeepsRole(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	admin := h.addUser("root", entity.RoleAdmin)
	doctor := &entity.Doctor{UserID: admin.ID, FullName: "Dr. Root", StartTime: "09:00", EndTime: "17:00", Status: entity.DoctorStatusPending}
	require.NoError(t, h.doctors.Create(ctx, doctor))

	_, err := h.admin.SetDoctorStatus(ctx, admin.ID, doctor.ID, "approved")
	require.NoError(t, err)

	account, _ := h.users.FindByID(ctx, admin.ID)
	assert.True(t, account.IsDoctor)
	assert.Equal(t, entity.RoleAdmin, account.Role)
}

func TestSetDoctorStatus_Errors(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	admin := h.addUser("root", entity.RoleAdmin)
	_, rejected := h.addDoctor("bo", entity.DoctorStatusRejected)
	_, approved := h.addDoctor("cy", entity.DoctorStatusApproved)

	_, err := h.admin.SetDoctorStatus(ctx, admin.ID, rejected.ID, "approved")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = h.admin.SetDoctorStatus(ctx, admin.ID, approved.ID, "approved")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = h.admin.SetDoctorStatus(ctx, admin.ID, approved.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.admin.SetDoctorStatus(ctx, admin.ID, uuid.New(), "approved")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRemoveDoctor_DemotesOwner(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	admin := h.addUser("root", entity.RoleAdmin)
	owner, doctor := h.addDoctor("bo", entity.DoctorStatusApproved)

	require.NoError(t, h.admin.RemoveDoctor(ctx, admin.ID, doctor.ID))

	gone, _ := h.doctors.FindByID(ctx, doctor.ID)
	assert.Nil(t, gone)

	account, _ := h.users.FindByID(ctx, owner.ID)
	assert.False(t, account.IsDoctor)
	assert.Equal(t, entity.RolePatient, account.Role)

	assert.ErrorIs(t, h.admin.RemoveDoctor(ctx, admin.ID, doctor.ID), ErrDoctorNotFound)
}

func TestRemoveUser(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	admin := h.addUser("root", entity.RoleAdmin)
	patient := h.addUser("ana", entity.RolePatient)
	owner, doctor := h.addDoctor("bo", entity.DoctorStatusApproved)

	appt, err := h.appointment.Book(ctx, patient.ID, bookReq(doctor.ID, "2024-06-01", "10:00"))
	require.NoError(t, err)
	require.NoError(t, h.tokens.Store(ctx, owner.ID, jwt.AccessToken, "tid", time.Minute))

	assert.ErrorIs(t, h.admin.RemoveUser(ctx, admin.ID, admin.ID), ErrCannotRemoveSelf)
	assert.ErrorIs(t, h.admin.RemoveUser(ctx, admin.ID, uuid.New()), ErrUserNotFound)

	require.NoError(t, h.admin.RemoveUser(ctx, admin.ID, owner.ID))

	gone, _ := h.users.FindByID(ctx, owner.ID)
	assert.Nil(t, gone)
	record, _ := h.doctors.FindByID(ctx, doctor.ID)
	assert.Nil(t, record)
	assert.Empty(t, h.inbox(owner.ID))

	exists, _ := h.tokens.Exists(ctx, owner.ID, jwt.AccessToken, "tid")
	assert.False(t, exists)

	kept, _ := h.appts.FindByID(ctx, appt.ID)
	require.NotNil(t, kept)
	assert.Equal(t, "Dr. bo", kept.DoctorInfo.FullName)
}

func TestGetStats(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.addUser("root", entity.RoleAdmin)
	patient := h.addUser("ana", entity.RolePatient)
	_, approved := h.addDoctor("bo", entity.DoctorStatusApproved)
	h.addDoctor("cy", entity.DoctorStatusPending)
	h.addDoctor("di", entity.DoctorStatusPending)

	_, err := h.appointment.Book(ctx, patient.ID, bookReq(approved.ID, "2024-06-01", "10:00"))
	require.NoError(t, err)

	stats, err := h.admin.GetStats(ctx)
	require.NoError(t, err)

	// bo was promoted to doctor, cy and di still hold the patient role
	assert.Equal(t, int64(3), stats.Patients)
	assert.Equal(t, int64(1), stats.ApprovedDoctors)
	assert.Equal(t, int64(2), stats.PendingDoctors)
	assert.Equal(t, int64(1), stats.Appointments)
}

func TestAdminLists(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.addUser("root", entity.RoleAdmin)
	h.addDoctor("bo", entity.DoctorStatusApproved)
	h.addDoctor("cy", entity.DoctorStatusRejected)

	users, err := h.admin.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, users.Total)

	doctors, err := h.admin.GetAllDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, doctors.Total)

	appointments, err := h.admin.GetAllAppointments(ctx)
	require.NoError(t, err)
	assert.Zero(t, appointments.Total)
}
