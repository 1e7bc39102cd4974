package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"docspot/internal/delivery/dto"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/domain/entity"
	"docspot/internal/usecase"
	"docspot/pkg/response"
	"docspot/pkg/validator"
)

// UserHandler serves the account-level routes under /user
type UserHandler struct {
	userUsecase   usecase.UserUsecase
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase:   userUsecase,
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// GetProfile
// @Summary Get own profile
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.userUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfile
// @Summary Update own name and phone
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", user)
}

// ApplyDoctor submits a doctor application for the caller's account
// @Summary Apply as doctor
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ApplyDoctorRequest true "Apply Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /user/apply-doctor [post]
func (h *UserHandler) ApplyDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ApplyDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Apply(r.Context(), userID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to apply as doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor application submitted successfully", doctor)
}

// GetNotifications
// @Summary List unseen and seen notifications
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/notifications [get]
func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	inbox, err := h.userUsecase.GetNotifications(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", inbox)
}

// MarkNotificationsSeen
// @Summary Mark every notification as seen
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/mark-notifications-seen [post]
func (h *UserHandler) MarkNotificationsSeen(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.userUsecase.MarkAllNotificationsSeen(r.Context(), userID); err != nil {
		writeUsecaseError(w, err, "Failed to mark notifications as seen")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as seen", nil)
}

// DeleteNotifications
// @Summary Delete every notification
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/delete-notifications [delete]
func (h *UserHandler) DeleteNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.userUsecase.DeleteAllNotifications(r.Context(), userID); err != nil {
		writeUsecaseError(w, err, "Failed to delete notifications")
		return
	}

	response.Success(w, http.StatusOK, "All notifications deleted", nil)
}

// GetAllDoctors lists approved doctors
// @Summary List approved doctors
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param specialization query string false "Filter by specialization"
// @Param name query string false "Filter by doctor name"
// @Success 200 {object} response.Response
// @Router /user/all-doctors [get]
func (h *UserHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	filter := &entity.DoctorFilter{
		Name:           strings.TrimSpace(r.URL.Query().Get("name")),
		Specialization: strings.TrimSpace(r.URL.Query().Get("specialization")),
	}

	doctors, err := h.doctorUsecase.GetApprovedDoctors(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
