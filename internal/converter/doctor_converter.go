package converter

import (
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		FullName:       doctor.FullName,
		Email:          doctor.Email,
		Phone:          doctor.Phone,
		Address:        doctor.Address,
		Specialization: doctor.Specialization,
		Experience:     doctor.Experience,
		Fees:           doctor.Fees,
		StartTime:      doctor.StartTime,
		EndTime:        doctor.EndTime,
		Status:         string(doctor.Status),
		User:           UserToResponse(doctor.User),
		CreatedAt:      doctor.CreatedAt,
		UpdatedAt:      doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
