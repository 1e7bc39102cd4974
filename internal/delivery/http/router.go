package http

import (
	"net/http"
	"os"

	"docspot/internal/delivery/http/handler"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/service"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	uploadDir          string
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	adminHandler       *handler.AdminHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	uploadDir string,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		uploadDir:          uploadDir,
		authHandler:        authHandler,
		userHandler:        userHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		adminHandler:       adminHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

// Setup builds the route table. CORS wraps the router itself so that preflight
// requests, which match no route, still get their headers.
func (r *Router) Setup() http.Handler {
	return r.corsMiddleware.Handle(r.routes())
}

func (r *Router) routes() *mux.Router {
	// Stored appointment documents
	r.router.PathPrefix(service.PublicUploadPrefix).Handler(
		http.StripPrefix(service.PublicUploadPrefix, http.FileServer(documentFS{http.Dir(r.uploadDir)})),
	).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Account routes
	user := api.PathPrefix("/user").Subrouter()
	user.Use(r.authMiddleware.Authenticate)
	user.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	user.HandleFunc("/profile", r.userHandler.GetProfile).Methods(http.MethodGet)
	user.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	user.HandleFunc("/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	user.HandleFunc("/apply-doctor", r.userHandler.ApplyDoctor).Methods(http.MethodPost)
	user.HandleFunc("/notifications", r.userHandler.GetNotifications).Methods(http.MethodGet)
	user.HandleFunc("/mark-notifications-seen", r.userHandler.MarkNotificationsSeen).Methods(http.MethodPost)
	user.HandleFunc("/delete-notifications", r.userHandler.DeleteNotifications).Methods(http.MethodDelete)
	user.HandleFunc("/all-doctors", r.userHandler.GetAllDoctors).Methods(http.MethodGet)

	// Doctor routes; the fixed paths must be registered before /{id}
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.HandleFunc("/profile", r.doctorHandler.GetMyProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments", r.doctorHandler.GetMyAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointment/{id}/status", r.doctorHandler.UpdateAppointmentStatus).Methods(http.MethodPut)
	doctor.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Appointment routes
	appointment := api.PathPrefix("/appointment").Subrouter()
	appointment.Use(r.authMiddleware.Authenticate)
	appointment.HandleFunc("/book", r.appointmentHandler.Book).Methods(http.MethodPost)
	appointment.HandleFunc("/user", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointment.HandleFunc("/availability/{doctorId}", r.appointmentHandler.GetAvailability).Methods(http.MethodGet)
	appointment.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.adminHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/doctors", r.adminHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/stats", r.adminHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/doctor/{id}/status", r.adminHandler.SetDoctorStatus).Methods(http.MethodPut)
	admin.HandleFunc("/doctor/{id}", r.adminHandler.RemoveDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/user/{id}", r.adminHandler.RemoveUser).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// documentFS serves regular files only, so the upload directory is never listed
type documentFS struct {
	fs http.FileSystem
}

func (d documentFS) Open(name string) (http.File, error) {
	f, err := d.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
