package handlers

import (
	"net/http"
	"strconv"

	"dayflow/domain"
	"dayflow/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves the admin-only employee roster pages.
type AdminHandler struct {
	profiles repository.ProfileRepository
}

func NewAdminHandler(profiles repository.ProfileRepository) *AdminHandler {
	return &AdminHandler{profiles: profiles}
}

func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := h.profiles.List(r.Context())
	if err != nil {
		logrus.WithError(err).Warn("Employee roster load failed")
		rows = nil
	}

	employees := make([]domain.User, 0, len(rows))
	for i := range rows {
		user, err := domain.UserFromRow(&rows[i])
		if err != nil {
			logrus.WithError(err).WithField("user_id", rows[i].ID).Warn("Skipping unmappable profile row")
			continue
		}
		employees = append(employees, *user)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

type updateEmployeeRequest struct {
	FullName         *string  `json:"full_name"`
	Department       *string  `json:"department"`
	Designation      *string  `json:"designation"`
	Phone            *string  `json:"phone"`
	Address          *string  `json:"address"`
	SalaryBase       *float64 `json:"salary_base"`
	SalaryAllowance  *float64 `json:"salary_allowance"`
	SalaryDeductions *float64 `json:"salary_deductions"`
}

func (h *AdminHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	existing, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Designation != nil {
		fields["designation"] = *req.Designation
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	for name, v := range map[string]*float64{
		"salary_base":       req.SalaryBase,
		"salary_allowance":  req.SalaryAllowance,
		"salary_deductions": req.SalaryDeductions,
	} {
		if v == nil {
			continue
		}
		if *v < 0 {
			writeError(w, http.StatusBadRequest, "Salary amounts must be non-negative")
			return
		}
		fields[name] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No editable fields provided")
		return
	}

	if err := h.profiles.UpdateFields(r.Context(), id, fields); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("Employee update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	row, err := h.profiles.GetByID(r.Context(), id)
	if err != nil || row == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load updated employee")
		return
	}
	user, err := domain.UserFromRow(row)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load updated employee")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
