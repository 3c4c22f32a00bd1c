package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-management-api/internal/models"
)

func TestSignup_CreatesUserWithTrialSubscription(t *testing.T) {
	env := setupRouterEnv(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "Ana Souza",
		"email":    "Ana@Example.com",
		"password": "supersecret",
	})

	w := env.do(http.MethodPost, "/api/auth/signup", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Ana Souza", resp["name"])
	require.Equal(t, "ana@example.com", resp["email"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "ana@example.com").First(&user).Error)

	var sub models.Subscription
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&sub).Error)
	require.Equal(t, models.SubscriptionStatusTrial, sub.Status)
}

func TestSignup_PasswordTooShort(t *testing.T) {
	env := setupRouterEnv(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "Ana Souza",
		"email":    "ana@example.com",
		"password": "short",
	})

	w := env.do(http.MethodPost, "/api/auth/signup", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSignup_EmailTaken(t *testing.T) {
	env := setupRouterEnv(t)
	env.signupAndLogin(t, "Ana Souza", "ana@example.com")

	body, _ := json.Marshal(map[string]string{
		"name":     "Outra Ana",
		"email":    "ana@example.com",
		"password": "supersecret",
	})

	w := env.do(http.MethodPost, "/api/auth/signup", body, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := setupRouterEnv(t)
	user, cookies := env.signupAndLogin(t, "Ana Souza", "ana@example.com")

	w := env.do(http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, float64(user.ID), resp["id"])
	require.Equal(t, "ana@example.com", resp["email"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupRouterEnv(t)
	env.signupAndLogin(t, "Ana Souza", "ana@example.com")

	body, _ := json.Marshal(map[string]string{
		"email":    "ana@example.com",
		"password": "wrongpassword",
	})

	w := env.do(http.MethodPost, "/api/auth/login", body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	env := setupRouterEnv(t)
	_, cookies := env.signupAndLogin(t, "Ana Souza", "ana@example.com")

	w := env.do(http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The logout response rewrites the session cookie; requests carrying it
	// are no longer authenticated.
	cleared := w.Result().Cookies()
	w = env.do(http.MethodGet, "/api/auth/me", nil, cleared)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	env := setupRouterEnv(t)

	w := env.do(http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/organizations", []byte(`{"name":"Clinic X"}`), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
