package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	Apply(ctx context.Context, userID uuid.UUID, req *dto.ApplyDoctorRequest) (*dto.DoctorResponse, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
	GetMyAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetApprovedDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	notifier        service.Notifier
	auditService    service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	notifier service.Notifier,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		auditService:    auditService,
	}
}

// Apply files a doctor application for the account. An account holds at most one
// doctor record whatever its status, so re-applying is rejected.
func (u *doctorUsecase) Apply(ctx context.Context, userID uuid.UUID, req *dto.ApplyDoctorRequest) (*dto.DoctorResponse, error) {
	if err := validateHours(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.Fees.IsNegative() {
		return nil, ErrNegativeFees
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %s: %+v", userID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	doctor := &entity.Doctor{
		UserID:         userID,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          normalizeEmail(req.Email),
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Fees:           req.Fees,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         entity.DoctorStatusPending,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDoctorExists) {
			return nil, ErrAlreadyApplied
		}
		u.log.Warnf("Failed to create doctor application: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor application %s filed by user %s", doctor.ID, userID)

	_ = u.notifier.NotifyAdmins(ctx, service.Event{
		Type:    entity.NotificationDoctorApplication,
		Message: fmt.Sprintf("%s has applied for doctor registration", doctor.FullName),
		Data: entity.JSON{
			"doctorId": doctor.ID.String(),
			"name":     doctor.FullName,
		},
		OnClickPath: "/admin/doctors",
	})

	response := converter.DoctorToResponse(doctor)
	_ = u.auditService.LogCreate(ctx, &userID, entity.AuditActionDoctorApply, "doctor", doctor.ID.String(), response)

	return response, nil
}

func (u *doctorUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.findByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// UpdateMyProfile edits the caller's doctor record. Approval status is not editable here.
func (u *doctorUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.findByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := converter.DoctorToResponse(doctor)

	if name := strings.TrimSpace(req.FullName); name != "" {
		doctor.FullName = name
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Address != "" {
		doctor.Address = req.Address
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.Fees != nil {
		if req.Fees.IsNegative() {
			return nil, ErrNegativeFees
		}
		doctor.Fees = *req.Fees
	}
	if req.StartTime != "" {
		doctor.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		doctor.EndTime = req.EndTime
	}

	if err := validateHours(doctor.StartTime, doctor.EndTime); err != nil {
		return nil, err
	}

	rows, err := u.doctorRepo.UpdateProfile(ctx, doctor)
	if err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDoctorNotFound
	}

	// status may have moved while the profile was being edited
	if fresh, err := u.doctorRepo.FindByID(ctx, doctor.ID); err == nil && fresh != nil {
		doctor = fresh
	}

	updated := converter.DoctorToResponse(doctor)
	_ = u.auditService.LogUpdate(ctx, &userID, entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), old, updated)

	return updated, nil
}

// GetMyAppointments lists the appointments booked against the caller's doctor record
func (u *doctorUsecase) GetMyAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	doctor, err := u.findByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctor returns the public profile of an approved doctor
func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetApprovedDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	if filter == nil {
		filter = &entity.DoctorFilter{}
	}
	filter.Status = entity.DoctorStatusApproved

	doctors, err := u.doctorRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find approved doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) findByOwner(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// validateHours checks a pair of HH:MM working hours
func validateHours(start, end string) error {
	if err := validateTime(start); err != nil {
		return err
	}
	if err := validateTime(end); err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}
