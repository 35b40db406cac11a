package handlers

import (
	"net/http"

	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/repository"

	"github.com/sirupsen/logrus"
)

type PayrollHandler struct {
	profiles repository.ProfileRepository
}

func NewPayrollHandler(profiles repository.ProfileRepository) *PayrollHandler {
	return &PayrollHandler{profiles: profiles}
}

type payrollEntry struct {
	User   domain.User `json:"user"`
	NetPay float64     `json:"net_pay"`
}

// List returns the payroll table: the full roster for admins, only the
// viewer's own entry for employees.
func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var roster []domain.User
	if user.IsAdmin() {
		rows, err := h.profiles.List(r.Context())
		if err != nil {
			logrus.WithError(err).Warn("Payroll roster load failed")
			rows = nil
		}
		for i := range rows {
			mapped, err := domain.UserFromRow(&rows[i])
			if err != nil {
				logrus.WithError(err).WithField("user_id", rows[i].ID).Warn("Skipping unmappable profile row")
				continue
			}
			roster = append(roster, *mapped)
		}
	} else {
		roster = []domain.User{*user}
	}

	visible := domain.VisiblePayroll(user, roster)
	entries := make([]payrollEntry, 0, len(visible))
	for _, u := range visible {
		entries = append(entries, payrollEntry{User: u, NetPay: u.Salary.Net()})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
