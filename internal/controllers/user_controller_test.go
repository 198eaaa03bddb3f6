package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationFlow(t *testing.T) {
	router, db := newTestRouter(t)
	client := newTestClient(t, router)

	rec := client.register("mario@example.com", "Secret123!pw")
	require.Equal(t, http.StatusCreated, rec.Code)

	// The stored credential is a bcrypt hash, never the plaintext
	var user models.User
	require.NoError(t, db.Where("email = ?", "mario@example.com").First(&user).Error)
	assert.True(t, strings.HasPrefix(user.HashedPassword, "$2"))
	assert.NotEqual(t, "Secret123!pw", user.HashedPassword)
	assert.Equal(t, models.RoleCustomer, user.Role)

	// Registering the same email again is a conflict and adds no row
	rec = client.register("mario@example.com", "Secret123!pw")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_NOT_AVAILABLE")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The new account can log in and read its profile
	rec = client.login("mario@example.com", "Secret123!pw")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.User
	decodeBody(t, rec, &profile)
	assert.Equal(t, "mario@example.com", profile.Email)
	assert.Empty(t, profile.HashedPassword, "the hash must not leak into responses")
}

func TestRegistrationRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t)
	client := newTestClient(t, router)

	// Weak password
	rec := client.register("mario@example.com", "short")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PASSWORD_POLICY_VIOLATED")

	// Mismatching confirmation
	rec = client.do(http.MethodPost, "/register", map[string]string{
		"email":            "mario@example.com",
		"password":         "Secret123!pw",
		"confirm_password": "Different123!pw",
		"first_name":       "Mario",
		"last_name":        "Rossi",
		"street":           "Via Roma",
		"str_no":           "1",
		"zip":              "00100",
		"city":             "Rome",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PASSWORD_MISMATCH")

	// Missing address fields
	rec = client.do(http.MethodPost, "/register", map[string]string{
		"email":            "mario@example.com",
		"password":         "Secret123!pw",
		"confirm_password": "Secret123!pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	router, _ := newTestRouter(t)
	client := newTestClient(t, router)

	rec := client.register("mario@example.com", "Secret123!pw")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = client.login("mario@example.com", "WrongPass123!")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = client.login("nobody@example.com", "Secret123!pw")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Without a login the session gets no access to protected routes
	rec = client.do(http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	router, _ := newTestRouter(t)
	client := newTestClient(t, router)

	require.Equal(t, http.StatusCreated, client.register("mario@example.com", "Secret123!pw").Code)
	require.Equal(t, http.StatusOK, client.login("mario@example.com", "Secret123!pw").Code)
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/profile", nil).Code)

	require.Equal(t, http.StatusOK, client.do(http.MethodPost, "/logout", nil).Code)

	// Logout rotates the CSRF token together with the rest of the session
	client.csrf = client.fetchCSRF()
	rec := client.do(http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleUpdate(t *testing.T) {
	router, db := newTestRouter(t)
	createAdmin(t, db, "admin@example.com", "Admin123!pw")

	customer := newTestClient(t, router)
	require.Equal(t, http.StatusCreated, customer.register("mario@example.com", "Secret123!pw").Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "mario@example.com").First(&user).Error)

	admin := newTestClient(t, router)
	require.Equal(t, http.StatusOK, admin.login("admin@example.com", "Admin123!pw").Code)

	rec := admin.do(http.MethodPut, adminUserRolePath(user.ID), map[string]string{"role": models.RoleAdmin})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Unknown roles are rejected
	rec = admin.do(http.MethodPut, adminUserRolePath(user.ID), map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown users are a 404
	rec = admin.do(http.MethodPut, adminUserRolePath(9999), map[string]string{"role": models.RoleAdmin})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
