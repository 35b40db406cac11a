package handlers

import (
	"errors"
	"net/http"
	"time"

	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type LeaveHandler struct {
	leave *services.LeaveService
}

func NewLeaveHandler(leave *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leave: leave}
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	requests, err := h.leave.ListFor(r.Context(), user)
	if err != nil {
		logrus.WithError(err).Warn("Leave load failed")
		requests = []domain.LeaveRequest{}
	}
	requests = domain.VisibleLeaves(user, requests)

	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

type submitLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Remarks   string `json:"remarks"`
}

func (h *LeaveHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req submitLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	typ, err := domain.ParseLeaveType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave type")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date")
		return
	}

	request, err := h.leave.Submit(r.Context(), user, typ, start, end, req.Remarks)
	if err != nil {
		logrus.WithError(err).Error("Leave submit failed")
		writeError(w, http.StatusInternalServerError, "Failed to submit leave request")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"request": request})
}

type decideLeaveRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// Decide is the admin transition: Pending -> Approved|Rejected, terminal.
func (h *LeaveHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req decideLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParseLeaveStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid decision status")
		return
	}

	request, err := h.leave.Decide(r.Context(), id, status, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision):
			writeError(w, http.StatusBadRequest, "Decision must be Approved or Rejected")
		case errors.Is(err, services.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "Leave request not found")
		case errors.Is(err, services.ErrAlreadyDecided):
			writeError(w, http.StatusConflict, "Leave request has already been decided")
		default:
			logrus.WithError(err).Error("Leave decision failed")
			writeError(w, http.StatusInternalServerError, "Failed to update leave request")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"request": request})
}
