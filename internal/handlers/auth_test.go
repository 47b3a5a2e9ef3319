package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/raziqtech/portal-api/internal/bus"
	"github.com/raziqtech/portal-api/internal/constants"
	"github.com/raziqtech/portal-api/internal/dto"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/persistence"
	"github.com/raziqtech/portal-api/internal/services"
	"github.com/raziqtech/portal-api/internal/store"
)

type testEnv struct {
	store   *store.Store
	bus     *bus.Bus
	router  *gin.Engine
	auth    *AuthHandler
	authSvc *services.AuthService
}

// setupTestEnv builds a seeded store and a router with the session
// middleware and auth routes installed. Tests register the other routes
// they exercise.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := bus.New()
	t.Cleanup(b.Shutdown)

	st, err := store.New(b, persistence.NewMemorySnapshotter())
	require.NoError(t, err)
	st.SeedDemoData()

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	authSvc := services.NewAuthService(st)
	env := &testEnv{
		store:   st,
		bus:     b,
		router:  r,
		auth:    NewAuthHandler(authSvc),
		authSvc: authSvc,
	}
	r.POST("/api/auth/login", env.auth.Login)
	r.POST("/api/auth/signup", env.auth.Signup)
	return env
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// loginAs performs a real login and returns the session cookies to attach
// to subsequent requests.
func loginAs(t *testing.T, env *testEnv, email string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", gin.H{"email": email}))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@raziqtech.com"}))

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Alex Rivera", response.Name)
	require.Equal(t, models.RoleAdmin, response.Role)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_LoginUnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@raziqtech.com"}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginInvalidBody(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", gin.H{"email": "not-an-email"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name":  "Sarah Jenkins",
		"email": "sarah@fintech-inc.com",
	}))

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RoleClient, response.Role)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name":  "Impostor",
		"email": "jane@raziqtech.com",
	}))

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_SessionFlow(t *testing.T) {
	env := setupTestEnv(t)
	env.router.POST("/api/auth/logout", env.auth.Logout)
	env.router.GET("/api/auth/me", middleware.RequireAuth(env.store), env.auth.GetCurrentUser)

	cookies := loginAs(t, env, "jane@raziqtech.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "2", response.ID)

	// Without a session the same endpoint rejects.
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	env := setupTestEnv(t)
	env.router.GET("/api/auth/me", middleware.RequireAuth(env.store), env.auth.GetCurrentUser)

	cookies := loginAs(t, env, "jane@raziqtech.com")
	require.NoError(t, env.store.DeleteEmployee("p1"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
