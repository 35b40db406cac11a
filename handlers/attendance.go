package handlers

import (
	"errors"
	"net/http"

	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/services"

	"github.com/sirupsen/logrus"
)

type AttendanceHandler struct {
	attendance *services.AttendanceService
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	records, err := h.attendance.ListFor(r.Context(), user)
	if err != nil {
		// Reads degrade to an empty collection rather than blocking the page.
		logrus.WithError(err).Warn("Attendance load failed")
		records = []domain.AttendanceRecord{}
	}
	records = domain.VisibleAttendance(user, records)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"stats":   services.ComputeStats(records),
	})
}

func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	record, err := h.attendance.CheckIn(r.Context(), user)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			writeError(w, http.StatusConflict, "Already checked in today")
			return
		}
		writeError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"record": record})
}

func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	record, err := h.attendance.CheckOut(r.Context(), user)
	if err != nil {
		if errors.Is(err, services.ErrNotCheckedIn) {
			writeError(w, http.StatusConflict, "No open check-in for today")
			return
		}
		writeError(w, http.StatusInternalServerError, "Check-out failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"record": record})
}
