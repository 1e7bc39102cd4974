package converter

import (
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:       appointment.ID,
		UserID:   appointment.UserID,
		DoctorID: appointment.DoctorID,
		UserInfo: dto.PatientInfoResponse{
			Name:  appointment.PatientInfo.Name,
			Email: appointment.PatientInfo.Email,
			Phone: appointment.PatientInfo.Phone,
		},
		DoctorInfo: dto.DoctorInfoResponse{
			FullName:       appointment.DoctorInfo.FullName,
			Specialization: appointment.DoctorInfo.Specialization,
			Fees:           appointment.DoctorInfo.Fees,
			Address:        appointment.DoctorInfo.Address,
		},
		Date:      appointment.Date,
		Time:      appointment.Time,
		Document:  appointment.Document,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
