package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dayflow/config"
	"dayflow/database"
	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/repository"
	"dayflow/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the full API against an in-memory store, mirroring
// the route layout in main.go.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	middleware.SetJWTSecret(cfg.JWTSecret)

	profileRepo := repository.NewGormProfileRepository(db)
	attendanceRepo := repository.NewGormAttendanceRepository(db)
	leaveRepo := repository.NewGormLeaveRepository(db)

	attendanceService := services.NewAttendanceService(attendanceRepo)
	leaveService := services.NewLeaveService(leaveRepo)
	insightService := services.NewInsightService("", "")

	authHandler := NewAuthHandler(cfg, profileRepo)
	profileHandler := NewProfileHandler(profileRepo)
	attendanceHandler := NewAttendanceHandler(attendanceService)
	leaveHandler := NewLeaveHandler(leaveService)
	payrollHandler := NewPayrollHandler(profileRepo)
	adminHandler := NewAdminHandler(profileRepo)
	dashboardHandler := NewDashboardHandler(attendanceService, leaveService, insightService, profileRepo)

	router := chi.NewRouter()
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(profileRepo))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)
		r.Get("/dashboard", dashboardHandler.Summary)
		r.Get("/profile", profileHandler.Get)
		r.Put("/profile", profileHandler.Update)
		r.Get("/attendance", attendanceHandler.List)
		r.Post("/attendance/check-in", attendanceHandler.CheckIn)
		r.Post("/attendance/check-out", attendanceHandler.CheckOut)
		r.Get("/leave", leaveHandler.List)
		r.Post("/leave", leaveHandler.Submit)
		r.Get("/payroll", payrollHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Get("/admin/employees", adminHandler.ListEmployees)
			r.Put("/admin/employees/{id}", adminHandler.UpdateEmployee)
			r.Get("/admin/requests", leaveHandler.List)
			r.Post("/admin/requests/{id}/decision", leaveHandler.Decide)
		})
	})

	return router
}

func doJSON(t *testing.T, router chi.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, router chi.Router, email, fullName string, role domain.Role) string {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"password":  "secret123",
		"full_name": fullName,
		"role":      string(role),
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	token, ok := decodeBody(t, rr)["token"].(string)
	require.True(t, ok)
	return token
}
