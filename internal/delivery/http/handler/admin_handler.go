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

// AdminHandler serves the /admin routes. RequireAdmin guards every route.
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// GetAllUsers
// @Summary List every account
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUsecase.GetAllUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// GetAllDoctors
// @Summary List doctors of every status
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *AdminHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetAllAppointments
// @Summary List every appointment
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/appointments [get]
func (h *AdminHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.adminUsecase.GetAllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetStats
// @Summary Platform counters
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

// SetDoctorStatus approves or rejects a doctor application
// @Summary Approve or reject a doctor
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctor/{id}/status [put]
func (h *AdminHandler) SetDoctorStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.SetDoctorStatus(r.Context(), adminID, doctorID, req.Status)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update doctor status")
		return
	}

	response.Success(w, http.StatusOK, "Doctor status updated successfully", doctor)
}

// RemoveDoctor
// @Summary Delete a doctor record
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctor/{id} [delete]
func (h *AdminHandler) RemoveDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.adminUsecase.RemoveDoctor(r.Context(), adminID, doctorID); err != nil {
		writeUsecaseError(w, err, "Failed to remove doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor removed successfully", nil)
}

// RemoveUser
// @Summary Delete an account
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/user/{id} [delete]
func (h *AdminHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.adminUsecase.RemoveUser(r.Context(), adminID, userID); err != nil {
		writeUsecaseError(w, err, "Failed to remove user")
		return
	}

	response.Success(w, http.StatusOK, "User removed successfully", nil)
}
