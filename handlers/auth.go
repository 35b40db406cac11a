package handlers

import (
	"fmt"
	"math/rand"
	"net/http"

	"dayflow/config"
	"dayflow/domain"
	"dayflow/middleware"
	"dayflow/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config   *config.Config
	profiles repository.ProfileRepository
}

func NewAuthHandler(cfg *config.Config, profiles repository.ProfileRepository) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		profiles: profiles,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Email and full name are required")
		return
	}
	if len(req.Password) < 5 {
		writeError(w, http.StatusBadRequest, "Password must be at least 5 characters")
		return
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		role = parsed
	}

	existing, err := h.profiles.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Email is already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	profile := domain.UserToRow(&domain.User{
		EmployeeID: generateEmployeeID(),
		Email:      req.Email,
		FullName:   req.FullName,
		Role:       role,
		Avatar:     fmt.Sprintf("https://picsum.photos/seed/%s/200", uuid.NewString()[:8]),
	})
	profile.PasswordHash = string(hashedPassword)

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		// A random employee id can land on the unique index; regenerate
		// and try again before giving up.
		logrus.WithError(err).WithField("employee_id", profile.EmployeeID).Warn("Profile insert failed, retrying with a new employee id")
		profile.EmployeeID = generateEmployeeID()
		if err := h.profiles.Create(r.Context(), profile); err != nil {
			logrus.WithError(err).Error("Failed to insert profile")
			writeError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
	}

	user, err := domain.UserFromRow(profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profiles.GetByEmail(r.Context(), req.Email)
	if err != nil || profile == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := domain.UserFromRow(profile)
	if err != nil {
		// A profile that no longer maps cleanly cannot authenticate.
		logrus.WithError(err).WithField("user_id", profile.ID).Warn("Profile failed to map on login")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the authenticated identity; the middleware already
// re-fetched the profile, so this is the getSession read.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

var generateEmployeeID = func() string {
	return fmt.Sprintf("EMP-%05d", 10000+rand.Intn(90000))
}
