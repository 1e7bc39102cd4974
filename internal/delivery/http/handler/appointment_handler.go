package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docspot/internal/delivery/dto"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/usecase"
	"docspot/pkg/response"
	"docspot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// multipartOverhead leaves room for the form fields next to the document
const multipartOverhead = 1 << 20

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	maxUploadBytes     int64
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		maxUploadBytes:     maxUploadBytes,
	}
}

// Book creates a pending appointment. The body is JSON, or multipart/form-data
// when a document is attached under the "document" field.
// @Summary Book an appointment
// @Tags Appointment
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Param document formData file false "Supporting document (PDF, PNG or JPEG)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 413 {object} response.Response
// @Router /appointment/book [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.PayloadTooLarge(w, "Uploaded document is too large")
				return
			}
			response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		req.DoctorID = r.FormValue("doctor_id")
		req.Date = r.FormValue("date")
		req.Time = r.FormValue("time")

		file, _, err := r.FormFile("document")
		switch {
		case err == nil:
			defer file.Close()
			req.Document = file
		case !errors.Is(err, http.ErrMissingFile):
			response.Error(w, http.StatusBadRequest, "Invalid document upload", nil)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), userID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// GetMyAppointments lists the caller's appointments, newest first
// @Summary List own appointments
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointment/user [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAvailability
// @Summary List booked times of a doctor on a date
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointment/availability/{doctorId} [get]
func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	availability, err := h.appointmentUsecase.GetAvailability(r.Context(), doctorID, date)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// Cancel
// @Summary Cancel own appointment
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointment/{id}/cancel [put]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), userID, appointmentID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}
