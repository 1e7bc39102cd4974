package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	SetStatus(ctx context.Context, doctorUserID, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	slotLocker      service.SlotLocker
	blobStore       service.BlobStore
	notifier        service.Notifier
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	slotLocker service.SlotLocker,
	blobStore service.BlobStore,
	notifier service.Notifier,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		slotLocker:      slotLocker,
		blobStore:       blobStore,
		notifier:        notifier,
		auditService:    auditService,
	}
}

// Book creates a pending appointment for the patient.
//
// Concurrent requests for one slot are funnelled through a short Redis lock; the
// database check-and-insert inside a transaction plus the partial unique index on
// active slots remain the source of truth when Redis is unavailable.
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidDoctorID
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if err := validateTime(req.Time); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsApproved() {
		return nil, ErrDoctorNotAvailable
	}
	if !doctor.WithinHours(req.Time) {
		return nil, ErrOutsideWorkingHours
	}

	patient, err := u.userRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	release, err := u.slotLocker.Acquire(ctx, doctor.ID, req.Date, req.Time)
	switch {
	case errors.Is(err, service.ErrSlotLocked):
		return nil, ErrSlotConflict
	case err != nil:
		u.log.Warnf("Slot lock unavailable, relying on database guard: %+v", err)
	default:
		defer release()
	}

	var document string
	if req.Document != nil {
		document, err = u.blobStore.Save(ctx, req.Document)
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedDocument) ||
				errors.Is(err, service.ErrDocumentTooLarge) ||
				errors.Is(err, service.ErrEmptyDocument) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			u.log.Warnf("Failed to store appointment document: %+v", err)
			return nil, err
		}
	}

	appointment := &entity.Appointment{
		UserID:   patient.ID,
		DoctorID: doctor.ID,
		PatientInfo: entity.PatientInfo{
			Name:  patient.Name,
			Email: patient.Email,
			Phone: patient.Phone,
		},
		DoctorInfo: entity.DoctorInfo{
			FullName:       doctor.FullName,
			Specialization: doctor.Specialization,
			Fees:           doctor.Fees,
			Address:        doctor.Address,
		},
		Date:     req.Date,
		Time:     req.Time,
		Document: document,
		Status:   entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.CreateInSlot(ctx, appointment); err != nil {
		if document != "" {
			if derr := u.blobStore.Delete(ctx, document); derr != nil {
				u.log.Warnf("Failed to delete orphaned document %s: %+v", document, derr)
			}
		}
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s booked with doctor %s on %s %s", appointment.ID, doctor.ID, appointment.Date, appointment.Time)

	_ = u.notifier.Notify(ctx, doctor.UserID, service.Event{
		Type:        entity.NotificationNewAppointment,
		Message:     fmt.Sprintf("New appointment request from %s on %s", patient.Name, appointment.Date),
		Data:        entity.JSON{"appointmentId": appointment.ID.String()},
		OnClickPath: "/doctor/appointments",
	})

	response := converter.AppointmentToResponse(appointment)
	_ = u.auditService.LogCreate(ctx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), response)

	return response, nil
}

// Cancel lets the owning patient cancel a pending or scheduled appointment
func (u *appointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByIDAndUser(ctx, appointmentID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsActive() {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status
	target := entity.AppointmentStatusCancelled

	// Atomic conditional update: only succeeds while the appointment still occupies its slot
	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointment.ID, target.SourceStatuses(), target)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}
	appointment.Status = target

	u.log.Infof("Appointment %s cancelled by patient %s", appointment.ID, patientID)

	doctor, err := u.doctorRepo.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s for cancel notification: %+v", appointment.DoctorID, err)
	}
	if doctor != nil {
		_ = u.notifier.Notify(ctx, doctor.UserID, service.Event{
			Type:        entity.NotificationAppointmentCancel,
			Message:     fmt.Sprintf("Appointment on %s has been cancelled by patient", appointment.Date),
			Data:        entity.JSON{"appointmentId": appointment.ID.String()},
			OnClickPath: "/doctor/appointments",
		})
	}

	_ = u.auditService.LogUpdate(ctx, &patientID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), oldStatus, target)

	return converter.AppointmentToResponse(appointment), nil
}

// SetStatus moves an appointment of the caller's doctor record along the state machine
func (u *appointmentUsecase) SetStatus(ctx context.Context, doctorUserID, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(status)
	if !target.IsValid() || target == entity.AppointmentStatusPending {
		return nil, ErrInvalidTransition
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %s: %+v", doctorUserID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctor.ID {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status
	if !oldStatus.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointment.ID, []entity.AppointmentStatus{oldStatus}, target)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointment.ID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}
	appointment.Status = target

	u.log.Infof("Appointment %s moved from %s to %s", appointment.ID, oldStatus, target)

	_ = u.notifier.Notify(ctx, appointment.UserID, service.Event{
		Type:    entity.NotificationAppointmentStatus,
		Message: fmt.Sprintf("Your appointment on %s has been %s", appointment.Date, target),
		Data: entity.JSON{
			"appointmentId": appointment.ID.String(),
			"status":        string(target),
		},
		OnClickPath: "/appointments",
	})

	_ = u.auditService.LogUpdate(ctx, &doctorUserID, entity.AuditActionAppointmentStatus, "appointment", appointment.ID.String(), oldStatus, target)

	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments returns the patient's appointments, newest first
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAvailability lists the occupied times of an approved doctor on a date
func (u *appointmentUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsApproved() {
		return nil, ErrDoctorNotAvailable
	}

	booked, err := u.appointmentRepo.FindActiveTimes(ctx, doctor.ID, date)
	if err != nil {
		u.log.Warnf("Failed to find booked times for doctor %s on %s: %+v", doctor.ID, date, err)
		return nil, err
	}
	if booked == nil {
		booked = []string{}
	}

	return &dto.AvailabilityResponse{
		DoctorID:  doctor.ID,
		Date:      date,
		StartTime: doctor.StartTime,
		EndTime:   doctor.EndTime,
		Booked:    booked,
	}, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

func validateTime(t string) error {
	if len(t) != len(timeLayout) {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse(timeLayout, t); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}
