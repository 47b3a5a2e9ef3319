package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/raziqtech/portal-api/internal/dto"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/services"
)

func setupEmployeeRoutes(t *testing.T, env *testEnv) {
	t.Helper()
	handler := NewEmployeeHandler(services.NewEmployeeService(env.store))

	env.router.GET("/api/team", handler.ListTeam)

	admin := env.router.Group("/api", middleware.RequireAuth(env.store), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/employees", handler.ListEmployees)
		admin.POST("/employees", handler.CreateEmployee)
		admin.PUT("/employees/:id", handler.UpdateEmployee)
		admin.DELETE("/employees/:id", handler.DeleteEmployee)
		admin.GET("/pending-updates", handler.ListPendingUpdates)
		admin.POST("/pending-updates/:id/approve", handler.ApproveUpdate)
		admin.POST("/pending-updates/:id/reject", handler.RejectUpdate)
	}

	profile := env.router.Group("/api/profile", middleware.RequireAuth(env.store), middleware.RequireRole(models.RoleEmployee))
	{
		profile.GET("", handler.GetOwnProfile)
		profile.POST("/update-request", handler.RequestProfileUpdate)
	}
}

func TestEmployeeHandler_TeamIsPublic(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)

	w := do(env, httptest.NewRequest(http.MethodGet, "/api/team", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Team []dto.ProfileDTO `json:"team"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Team, 2)
}

func TestEmployeeHandler_AdminGuard(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)

	w := do(env, httptest.NewRequest(http.MethodGet, "/api/employees", nil), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	janeCookies := loginAs(t, env, "jane@raziqtech.com")
	w = do(env, httptest.NewRequest(http.MethodGet, "/api/employees", nil), janeCookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmployeeHandler_CreateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)
	cookies := loginAs(t, env, "admin@raziqtech.com")

	w := do(env, jsonRequest(t, http.MethodPost, "/api/employees", gin.H{
		"email":      "lin@raziqtech.com",
		"name":       "Lin Park",
		"username":   "linpark",
		"full_name":  "Lin Park",
		"role_title": "Platform Engineer",
		"skills":     []string{"Go", "Kubernetes"},
	}), cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		User    dto.UserDTO    `json:"user"`
		Profile dto.ProfileDTO `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.RoleEmployee, created.User.Role)
	require.Equal(t, created.User.ID, created.Profile.UserID)
	require.Equal(t, models.ProfileStatusApproved, created.Profile.Status)

	// Duplicate email is mapped to a conflict.
	w = do(env, jsonRequest(t, http.MethodPost, "/api/employees", gin.H{
		"email":      "lin@raziqtech.com",
		"name":       "Lin Again",
		"username":   "linagain",
		"full_name":  "Lin Again",
		"role_title": "Engineer",
	}), cookies)
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(env, httptest.NewRequest(http.MethodDelete, "/api/employees/"+created.Profile.ID, nil), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(env, httptest.NewRequest(http.MethodDelete, "/api/employees/"+created.Profile.ID, nil), cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_DirectUpdateBypassesApproval(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)
	cookies := loginAs(t, env, "admin@raziqtech.com")

	w := do(env, jsonRequest(t, http.MethodPut, "/api/employees/p1", gin.H{
		"profile": gin.H{"role_title": "Staff AI Engineer"},
	}), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.ProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "Staff AI Engineer", profile.RoleTitle)
	require.Equal(t, models.ProfileStatusApproved, profile.Status)
}

func TestEmployeeHandler_ApprovalWorkflow(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)

	janeCookies := loginAs(t, env, "jane@raziqtech.com")

	// Jane sees her own profile and files an update request.
	w := do(env, httptest.NewRequest(http.MethodGet, "/api/profile", nil), janeCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(env, jsonRequest(t, http.MethodPost, "/api/profile/update-request", gin.H{
		"bio": "Now leading the vision team.",
	}), janeCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry dto.PendingUpdateDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.Equal(t, "p1", entry.EmployeeID)

	// A second request while one is pending is rejected.
	w = do(env, jsonRequest(t, http.MethodPost, "/api/profile/update-request", gin.H{
		"bio": "Changed my mind.",
	}), janeCookies)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The admin reviews the queue and approves.
	adminCookies := loginAs(t, env, "admin@raziqtech.com")
	w = do(env, httptest.NewRequest(http.MethodGet, "/api/pending-updates", nil), adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var queue struct {
		PendingUpdates []dto.PendingUpdateDTO `json:"pending_updates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Len(t, queue.PendingUpdates, 1)

	w = do(env, httptest.NewRequest(http.MethodPost, "/api/pending-updates/"+entry.ID+"/approve", nil), adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.ProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "Now leading the vision team.", profile.Bio)
	require.Equal(t, models.ProfileStatusApproved, profile.Status)

	// Approving again is a 404: the entry was consumed.
	w = do(env, httptest.NewRequest(http.MethodPost, "/api/pending-updates/"+entry.ID+"/approve", nil), adminCookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_ProfileRouteForbiddenForAdmin(t *testing.T) {
	env := setupTestEnv(t)
	setupEmployeeRoutes(t, env)
	cookies := loginAs(t, env, "admin@raziqtech.com")

	w := do(env, httptest.NewRequest(http.MethodGet, "/api/profile", nil), cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}
