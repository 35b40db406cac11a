package handlers

import (
	"net/http"

	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/repository"
	"dayflow/services"

	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	attendance *services.AttendanceService
	leave      *services.LeaveService
	insight    *services.InsightService
	profiles   repository.ProfileRepository
}

func NewDashboardHandler(attendance *services.AttendanceService, leave *services.LeaveService, insight *services.InsightService, profiles repository.ProfileRepository) *DashboardHandler {
	return &DashboardHandler{
		attendance: attendance,
		leave:      leave,
		insight:    insight,
		profiles:   profiles,
	}
}

// Summary aggregates the dashboard figures. Each underlying load fails
// independently: a collection that cannot be read shows up empty, never
// blocks the page.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	records, err := h.attendance.ListFor(r.Context(), user)
	if err != nil {
		logrus.WithError(err).Warn("Dashboard attendance load failed")
		records = []domain.AttendanceRecord{}
	}
	ownRecords := domain.VisibleAttendance(user, records)
	// Employees' records are already their own; for admins narrow to self
	// for the personal figures.
	var presentDays int
	for _, rec := range ownRecords {
		if rec.UserID == user.ID && rec.Status == domain.AttendancePresent {
			presentDays++
		}
	}

	requests, err := h.leave.ListFor(r.Context(), user)
	if err != nil {
		logrus.WithError(err).Warn("Dashboard leave load failed")
		requests = []domain.LeaveRequest{}
	}
	var ownPending int
	for _, req := range requests {
		if req.UserID == user.ID && req.Status == domain.LeavePending {
			ownPending++
		}
	}

	summary := map[string]interface{}{
		"days_present":  presentDays,
		"pending_leave": ownPending,
	}

	insightData := map[string]interface{}{"attendance": presentDays}
	if user.IsAdmin() {
		totalPending, err := h.leave.CountPending(r.Context())
		if err != nil {
			logrus.WithError(err).Warn("Dashboard pending count failed")
		}
		var employeeCount int
		if rows, err := h.profiles.List(r.Context()); err == nil {
			employeeCount = len(rows)
		} else {
			logrus.WithError(err).Warn("Dashboard roster load failed")
		}
		summary["employees"] = employeeCount
		summary["pending_requests"] = totalPending
		insightData = map[string]interface{}{
			"employeesCount": employeeCount,
			"pendingLeaves":  totalPending,
		}
	}

	summary["insight"] = h.insight.DailySummary(r.Context(), user.FullName, user.Role, insightData)

	writeJSON(w, http.StatusOK, summary)
}
