package handler

import (
	"encoding/json"
	"net/http"

	"docspot/internal/delivery/dto"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/usecase"
	"docspot/pkg/response"
	"docspot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase      usecase.DoctorUsecase
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:      doctorUsecase,
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// GetMyProfile returns the caller's doctor record
// @Summary Get own doctor profile
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/profile [get]
func (h *DoctorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctor, err := h.doctorUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get doctor profile")
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", doctor)
}

// UpdateMyProfile
// @Summary Update own doctor profile
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorProfileRequest true "Update Doctor Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateMyProfile(r.Context(), userID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update doctor profile")
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", doctor)
}

// GetMyAppointments lists appointments booked with the caller
// @Summary List appointments of own practice
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
func (h *DoctorHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.doctorUsecase.GetMyAppointments(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// UpdateAppointmentStatus moves an appointment along its lifecycle
// @Summary Update appointment status
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointment/{id}/status [put]
func (h *DoctorHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.SetStatus(r.Context(), userID, appointmentID, req.Status)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// GetDoctor returns the public profile of an approved doctor
// @Summary Get doctor by ID
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
