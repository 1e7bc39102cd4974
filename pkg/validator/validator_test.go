package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingInput struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Status   string `json:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&bookingInput{
		DoctorID: "0b6f4c9e-4a0e-4a53-9f53-8b2f3b4f6d10",
		Date:     "2024-06-01",
		Time:     "10:00",
		Status:   "scheduled",
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&bookingInput{
		DoctorID: "nope",
		Date:     "01/06/2024",
		Status:   "done",
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "doctor_id must be a valid UUID", errs["doctor_id"])
	assert.Equal(t, "date must match the format 2006-01-02", errs["date"])
	assert.Equal(t, "time is required", errs["time"])
	assert.Equal(t, "status must be one of: scheduled cancelled completed", errs["status"])
}
