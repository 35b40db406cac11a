package handlers

import (
	"net/http"

	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/repository"

	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profiles repository.ProfileRepository
}

func NewProfileHandler(profiles repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatar_url"`
}

// Update writes the mutable profile fields only. Role, employee id,
// joining date and salary are not editable through this path.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No editable fields provided")
		return
	}

	if err := h.profiles.UpdateFields(r.Context(), user.ID, fields); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Profile update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	row, err := h.profiles.GetByID(r.Context(), user.ID)
	if err != nil || row == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load updated profile")
		return
	}
	updated, err := domain.UserFromRow(row)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load updated profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}
