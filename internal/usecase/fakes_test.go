package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"docspot/config"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"
	"docspot/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// store is an in-memory stand-in for the database shared by the fake repositories
type store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*entity.User
	doctors       map[uuid.UUID]*entity.Doctor
	appointments  []*entity.Appointment
	notifications []*entity.Notification
	auditLogs     []*entity.AuditLog
}

func newStore() *store {
	return &store{
		users:   map[uuid.UUID]*entity.User{},
		doctors: map[uuid.UUID]*entity.Doctor{},
	}
}

// fakeUserRepo

type fakeUserRepo struct {
	s *store
	// beforeUpdate runs ahead of UpdateProfile to interleave a concurrent write
	beforeUpdate func()
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var users []entity.User
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role string) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var users []entity.User
	for _, u := range r.s.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, phone string) (int64, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	return r.update(id, func(u *entity.User) {
		u.Name = name
		u.Phone = phone
	})
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string, isDoctor bool) (int64, error) {
	return r.update(id, func(u *entity.User) {
		u.Role = role
		u.IsDoctor = isDoctor
	})
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (int64, error) {
	return r.update(id, func(u *entity.User) {
		u.Password = passwordHash
	})
}

func (r *fakeUserRepo) update(id uuid.UUID, set func(*entity.User)) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, nil
	}
	set(u)
	u.UpdatedAt = time.Now()
	return 1, nil
}

// Delete cascades to notifications and the doctor record like the schema does
func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.users, id)
	for did, d := range r.s.doctors {
		if d.UserID == id {
			delete(r.s.doctors, did)
		}
	}
	kept := r.s.notifications[:0]
	for _, n := range r.s.notifications {
		if n.UserID != id {
			kept = append(kept, n)
		}
	}
	r.s.notifications = kept
	return 1, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	users, _ := r.FindByRole(ctx, role)
	return int64(len(users)), nil
}

// fakeDoctorRepo

type fakeDoctorRepo struct {
	s            *store
	beforeUpdate func()
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.doctors {
		if d.UserID == doctor.UserID {
			return repository.ErrDoctorExists
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt, doctor.UpdatedAt = time.Now(), time.Now()
	cp := *doctor
	cp.User = nil
	r.s.doctors[doctor.ID] = &cp
	return nil
}

func (r *fakeDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.doctors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindAll(_ context.Context, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var doctors []entity.Doctor
	for _, d := range r.s.doctors {
		if filter != nil && filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter != nil && filter.Specialization != "" && d.Specialization != filter.Specialization {
			continue
		}
		doctors = append(doctors, *d)
	}
	return doctors, nil
}

func (r *fakeDoctorRepo) UpdateProfile(_ context.Context, doctor *entity.Doctor) (int64, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.doctors[doctor.ID]
	if !ok {
		return 0, nil
	}
	d.FullName = doctor.FullName
	d.Phone = doctor.Phone
	d.Address = doctor.Address
	d.Specialization = doctor.Specialization
	d.Experience = doctor.Experience
	d.Fees = doctor.Fees
	d.StartTime = doctor.StartTime
	d.EndTime = doctor.EndTime
	d.UpdatedAt = time.Now()
	return 1, nil
}

func (r *fakeDoctorRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.DoctorStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.doctors[id]
	if !ok || d.Status != from {
		return 0, nil
	}
	d.Status = to
	return 1, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.s.doctors, id)
	return 1, nil
}

func (r *fakeDoctorRepo) CountByStatus(ctx context.Context, status entity.DoctorStatus) (int64, error) {
	doctors, _ := r.FindAll(ctx, &entity.DoctorFilter{Status: status})
	return int64(len(doctors)), nil
}

// fakeAppointmentRepo

type fakeAppointmentRepo struct{ s *store }

func (r *fakeAppointmentRepo) CreateInSlot(_ context.Context, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.appointments {
		if a.DoctorID == appointment.DoctorID && a.Date == appointment.Date && a.Time == appointment.Time && a.IsActive() {
			return repository.ErrSlotTaken
		}
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt, appointment.UpdatedAt = time.Now(), time.Now()
	cp := *appointment
	r.s.appointments = append(r.s.appointments, &cp)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.appointments {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Appointment, error) {
	a, _ := r.FindByID(ctx, id)
	if a == nil || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAppointmentRepo) filter(keep func(*entity.Appointment) bool) []entity.Appointment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Appointment
	for i := len(r.s.appointments) - 1; i >= 0; i-- {
		if keep(r.s.appointments[i]) {
			out = append(out, *r.s.appointments[i])
		}
	}
	return out
}

func (r *fakeAppointmentRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	return r.filter(func(a *entity.Appointment) bool { return a.UserID == userID }), nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(_ context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return r.filter(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *fakeAppointmentRepo) FindAll(_ context.Context) ([]entity.Appointment, error) {
	return r.filter(func(*entity.Appointment) bool { return true }), nil
}

func (r *fakeAppointmentRepo) FindActiveTimes(_ context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	var times []string
	for _, a := range r.filter(func(a *entity.Appointment) bool {
		return a.DoctorID == doctorID && a.Date == date && a.IsActive()
	}) {
		times = append(times, a.Time)
	}
	sort.Strings(times)
	return times, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.appointments {
		if a.ID != id {
			continue
		}
		for _, f := range from {
			if a.Status == f {
				a.Status = to
				return 1, nil
			}
		}
		return 0, nil
	}
	return 0, nil
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.appointments)), nil
}

// fakeNotificationRepo

type fakeNotificationRepo struct{ s *store }

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) FindByUserID(_ context.Context, userID uuid.UUID, seen bool) ([]entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID && n.Seen == seen {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAllSeen(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.Seen {
			n.Seen = true
			rows++
		}
	}
	return rows, nil
}

func (r *fakeNotificationRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows int64
	kept := r.s.notifications[:0]
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			rows++
			continue
		}
		kept = append(kept, n)
	}
	r.s.notifications = kept
	return rows, nil
}

// fakeAuditLogRepo

type fakeAuditLogRepo struct{ s *store }

func (r *fakeAuditLogRepo) Create(_ context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	log.ID = int64(len(r.s.auditLogs) + 1)
	log.CreatedAt = time.Now()
	cp := *log
	r.s.auditLogs = append(r.s.auditLogs, &cp)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(_ context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.AuditLog
	for i := offset; i < len(r.s.auditLogs) && len(out) < limit; i++ {
		out = append(out, *r.s.auditLogs[i])
	}
	return out, int64(len(r.s.auditLogs)), nil
}

func (r *fakeAuditLogRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.auditLogs {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeTransactor runs fn without isolation

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeTokenStore

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]uuid.UUID{}}
}

func (s *fakeTokenStore) key(tokenType jwt.TokenType, tokenID string) string {
	return string(tokenType) + ":" + tokenID
}

func (s *fakeTokenStore) Store(_ context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[s.key(tokenType, tokenID)] = userID
	return nil
}

func (s *fakeTokenStore) Exists(_ context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.tokens[s.key(tokenType, tokenID)]
	return ok && owner == userID, nil
}

func (s *fakeTokenStore) Revoke(_ context.Context, _ uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, s.key(tokenType, tokenID))
	return nil
}

func (s *fakeTokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, k)
		}
	}
	return nil
}

// fakeSlotLocker holds locks in memory; err simulates an unavailable backend

type fakeSlotLocker struct {
	mu    sync.Mutex
	held  map[string]bool
	err   error
	calls int
}

func newFakeSlotLocker() *fakeSlotLocker {
	return &fakeSlotLocker{held: map[string]bool{}}
}

func (l *fakeSlotLocker) Acquire(_ context.Context, doctorID uuid.UUID, date, slot string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	key := doctorID.String() + date + slot
	if l.held[key] {
		return nil, service.ErrSlotLocked
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, nil
}

// fakeBlobStore records what it was given

type fakeBlobStore struct {
	saved   [][]byte
	deleted []string
	err     error
}

func (b *fakeBlobStore) Save(_ context.Context, r io.Reader) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.saved = append(b.saved, data)
	return service.PublicUploadPrefix + "doc.pdf", nil
}

func (b *fakeBlobStore) Delete(_ context.Context, ref string) error {
	b.deleted = append(b.deleted, ref)
	return nil
}

// harness wires every usecase against the shared in-memory store

type harness struct {
	store       *store
	users       *fakeUserRepo
	doctors     *fakeDoctorRepo
	appts       *fakeAppointmentRepo
	notifs      *fakeNotificationRepo
	audits      *fakeAuditLogRepo
	tokens      *fakeTokenStore
	locker      *fakeSlotLocker
	blobs       *fakeBlobStore
	jwt         *jwt.JWTService
	auth        AuthUsecase
	user        UserUsecase
	doctor      DoctorUsecase
	appointment AppointmentUsecase
	admin       AdminUsecase
	auditLog    AuditLogUsecase
}

func newHarness() *harness {
	s := newStore()
	h := &harness{
		store:   s,
		users:   &fakeUserRepo{s: s},
		doctors: &fakeDoctorRepo{s: s},
		appts:   &fakeAppointmentRepo{s: s},
		notifs:  &fakeNotificationRepo{s: s},
		audits:  &fakeAuditLogRepo{s: s},
		tokens:  newFakeTokenStore(),
		locker:  newFakeSlotLocker(),
		blobs:   &fakeBlobStore{},
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  time.Minute,
			RefreshExpiry: time.Hour,
		}),
	}

	log := newTestLogger()
	notifier := service.NewNotifier(log, h.notifs, h.users)
	audit := service.NewAuditService(log, h.audits)

	h.auth = NewAuthUsecase(log, h.users, h.jwt, h.tokens, audit)
	h.user = NewUserUsecase(log, h.users, h.notifs, audit)
	h.doctor = NewDoctorUsecase(log, h.doctors, h.users, h.appts, notifier, audit)
	h.appointment = NewAppointmentUsecase(log, h.appts, h.doctors, h.users, h.locker, h.blobs, notifier, audit)
	h.admin = NewAdminUsecase(log, fakeTransactor{}, h.users, h.doctors, h.appts, notifier, audit, h.tokens)
	h.auditLog = NewAuditLogUsecase(log, h.audits)
	return h
}

func (h *harness) addUser(name, role string) *entity.User {
	user := &entity.User{Name: name, Email: name + "@example.com", Phone: "555-0100", Role: role}
	_ = h.users.Create(context.Background(), user)
	return user
}

// addDoctor creates an account owning a doctor record in the given status
func (h *harness) addDoctor(name string, status entity.DoctorStatus) (*entity.User, *entity.Doctor) {
	owner := h.addUser(name, entity.RolePatient)
	if status == entity.DoctorStatusApproved {
		owner.GrantDoctor()
		_, _ = h.users.UpdateRole(context.Background(), owner.ID, owner.Role, owner.IsDoctor)
	}
	doctor := &entity.Doctor{
		UserID:         owner.ID,
		FullName:       "Dr. " + name,
		Email:          owner.Email,
		Phone:          owner.Phone,
		Address:        "1 Main St",
		Specialization: "Cardiology",
		Experience:     5,
		StartTime:      "09:00",
		EndTime:        "17:00",
		Status:         status,
	}
	_ = h.doctors.Create(context.Background(), doctor)
	return owner, doctor
}

func (h *harness) inbox(userID uuid.UUID) []entity.Notification {
	n, _ := h.notifs.FindByUserID(context.Background(), userID, false)
	return n
}
