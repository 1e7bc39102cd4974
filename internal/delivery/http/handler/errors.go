package handler

import (
	"errors"
	"net/http"

	"docspot/internal/usecase"
	"docspot/pkg/response"
)

// writeUsecaseError maps usecase sentinels onto the HTTP envelope. Anything
// unrecognised is reported as a 500 with the given fallback message.
func writeUsecaseError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrDoctorNotAvailable),
		errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrSlotConflict),
		errors.Is(err, usecase.ErrAlreadyApplied),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
