package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"docspot/internal/delivery/http/handler"
	"docspot/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	return newTestRouterWithUploads(t, t.TempDir())
}

func newTestRouterWithUploads(t *testing.T, uploadDir string) *Router {
	t.Helper()
	return NewRouter(
		uploadDir,
		&handler.AuthHandler{},
		&handler.UserHandler{},
		&handler.DoctorHandler{},
		&handler.AppointmentHandler{},
		&handler.AdminHandler{},
		&handler.AuditLogHandler{},
		&middleware.AuthMiddleware{},
		middleware.NewCORSMiddleware(nil),
	)
}

func TestRoutes_FixedDoctorPathsWinOverID(t *testing.T) {
	routes := newTestRouter(t).routes()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/doctor/profile", "/api/v1/doctor/profile"},
		{http.MethodGet, "/api/v1/doctor/appointments", "/api/v1/doctor/appointments"},
		{http.MethodGet, "/api/v1/doctor/3f0c5a52-8a7e-4c55-9a3e-3c6d0a8d2e11", "/api/v1/doctor/{id}"},
		{http.MethodPut, "/api/v1/doctor/appointment/abc/status", "/api/v1/doctor/appointment/{id}/status"},
		{http.MethodGet, "/api/v1/appointment/availability/abc", "/api/v1/appointment/availability/{doctorId}"},
		{http.MethodDelete, "/api/v1/admin/user/abc", "/api/v1/admin/user/{id}"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var match mux.RouteMatch
			require.True(t, routes.Match(httptest.NewRequest(tt.method, tt.path, nil), &match))
			tpl, err := match.Route.GetPathTemplate()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tpl)
		})
	}
}

func TestSetup_HealthAndPreflight(t *testing.T) {
	h := newTestRouter(t).Setup()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/appointment/book", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetup_UploadsServesFilesButNoListing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patient-report.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	h := newTestRouterWithUploads(t, dir).Setup()

	tests := []struct {
		path string
		want int
	}{
		{"/uploads/", http.StatusNotFound},
		{"/uploads/nested/", http.StatusNotFound},
		{"/uploads/missing.pdf", http.StatusNotFound},
		{"/uploads/patient-report.pdf", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "patient-report.pdf")
		})
	}
}
