package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dayflow/database"
	"dayflow/domain"
	"dayflow/models"
	"dayflow/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newProfileRepo(t *testing.T) (*repository.GormProfileRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return repository.NewGormProfileRepository(db), db
}

func seedProfile(t *testing.T, db *gorm.DB, role domain.Role) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		EmployeeID:   "EMP-" + uuid.NewString()[:5],
		Email:        uuid.NewString() + "@dayflow.com",
		FullName:     "Test User",
		Role:         string(role),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &domain.User{ID: uuid.New(), Email: "john@dayflow.com", Role: domain.RoleEmployee}

	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &domain.User{ID: uuid.New(), Role: domain.RoleEmployee}

	token, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestAuthenticatorLoadsFreshProfile(t *testing.T) {
	SetJWTSecret("test-secret")
	repo, db := newProfileRepo(t)
	profile := seedProfile(t, db, domain.RoleEmployee)

	token, err := GenerateToken(&domain.User{ID: profile.ID, Email: profile.Email, Role: domain.RoleEmployee}, time.Hour)
	require.NoError(t, err)

	var got *domain.User
	handler := Authenticator(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	require.Equal(t, profile.ID, got.ID)
	require.Equal(t, profile.Email, got.Email)
}

func TestAuthenticatorFailsClosedOnMissingProfile(t *testing.T) {
	SetJWTSecret("test-secret")
	repo, _ := newProfileRepo(t)

	token, err := GenerateToken(&domain.User{ID: uuid.New(), Role: domain.RoleEmployee}, time.Hour)
	require.NoError(t, err)

	handler := Authenticator(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	SetJWTSecret("test-secret")
	repo, _ := newProfileRepo(t)

	handler := Authenticator(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	SetJWTSecret("test-secret")
	repo, db := newProfileRepo(t)
	employee := seedProfile(t, db, domain.RoleEmployee)

	token, err := GenerateToken(&domain.User{ID: employee.ID, Role: domain.RoleEmployee}, time.Hour)
	require.NoError(t, err)

	handler := Authenticator(repo)(RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	SetJWTSecret("test-secret")
	repo, db := newProfileRepo(t)
	admin := seedProfile(t, db, domain.RoleAdmin)

	token, err := GenerateToken(&domain.User{ID: admin.ID, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	called := false
	handler := Authenticator(repo)(RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)
}
