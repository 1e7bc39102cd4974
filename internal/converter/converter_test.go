package converter

import (
	"testing"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentToResponse_CopiesSnapshots(t *testing.T) {
	appointment := &entity.Appointment{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		DoctorID:    uuid.New(),
		PatientInfo: entity.PatientInfo{Name: "Ana", Email: "ana@example.com", Phone: "555"},
		DoctorInfo: entity.DoctorInfo{
			FullName:       "Dr. Bo",
			Specialization: "Cardiology",
			Fees:           decimal.RequireFromString("150.00"),
			Address:        "1 Main St",
		},
		Date:   "2030-01-15",
		Time:   "10:00",
		Status: entity.AppointmentStatusPending,
	}

	resp := AppointmentToResponse(appointment)

	assert.Equal(t, "Ana", resp.UserInfo.Name)
	assert.Equal(t, "Dr. Bo", resp.DoctorInfo.FullName)
	assert.True(t, decimal.RequireFromString("150").Equal(resp.DoctorInfo.Fees))
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, AppointmentToResponse(nil))
}

func TestDoctorToResponse_WithOwner(t *testing.T) {
	owner := &entity.User{ID: uuid.New(), Name: "Bo", Role: entity.RoleDoctor, IsDoctor: true}
	doctor := &entity.Doctor{ID: uuid.New(), UserID: owner.ID, FullName: "Dr. Bo", Status: entity.DoctorStatusApproved, User: owner}

	resp := DoctorToResponse(doctor)

	assert.Equal(t, "approved", resp.Status)
	if assert.NotNil(t, resp.User) {
		assert.Equal(t, owner.ID, resp.User.ID)
		assert.True(t, resp.User.IsDoctor)
	}
}

func TestAuditLogToResponse_WithoutUser(t *testing.T) {
	resp := AuditLogToResponse(&entity.AuditLog{ID: 7, Action: entity.AuditActionAppointmentBook})

	assert.Equal(t, int64(7), resp.ID)
	assert.Nil(t, resp.User)
}
