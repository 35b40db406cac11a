package main

import (
	"net/http"
	"time"

	"dayflow/config"
	"dayflow/database"
	"dayflow/domain"
	"dayflow/handlers"
	"dayflow/middleware"
	"dayflow/repository"
	"dayflow/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	db, err := database.Init(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Repositories
	profileRepo := repository.NewGormProfileRepository(db)
	attendanceRepo := repository.NewGormAttendanceRepository(db)
	leaveRepo := repository.NewGormLeaveRepository(db)

	// Services
	attendanceService := services.NewAttendanceService(attendanceRepo)
	leaveService := services.NewLeaveService(leaveRepo)
	insightService := services.NewInsightService(cfg.OpenAIKey, cfg.OpenAIModel)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, profileRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	payrollHandler := handlers.NewPayrollHandler(profileRepo)
	adminHandler := handlers.NewAdminHandler(profileRepo)
	dashboardHandler := handlers.NewDashboardHandler(attendanceService, leaveService, insightService, profileRepo)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Protected routes
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

		// Admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Get("/admin/employees", adminHandler.ListEmployees)
			r.Put("/admin/employees/{id}", adminHandler.UpdateEmployee)
			r.Get("/admin/requests", leaveHandler.List)
			r.Post("/admin/requests/{id}/decision", leaveHandler.Decide)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	logrus.Fatal(server.ListenAndServe())
}
