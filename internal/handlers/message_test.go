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
	"github.com/raziqtech/portal-api/internal/services"
)

func setupMessageRoutes(t *testing.T, env *testEnv) {
	t.Helper()
	handler := NewMessageHandler(services.NewMessagingService(env.store))

	messages := env.router.Group("/api/messages", middleware.RequireAuth(env.store))
	{
		messages.GET("/staff", handler.GetStaffRelay)
		messages.POST("/staff", handler.PostStaffMessage)
		messages.POST("/staff/read", handler.MarkStaffRead)
		messages.GET("/direct/:engineer_id", handler.GetDirectRelay)
		messages.POST("/direct/:engineer_id", handler.PostDirectMessage)
		messages.POST("/direct/:engineer_id/read", handler.MarkDirectRead)
	}
}

func TestMessageHandler_StaffRelayFlow(t *testing.T) {
	env := setupTestEnv(t)
	setupMessageRoutes(t, env)

	adminCookies := loginAs(t, env, "admin@raziqtech.com")
	w := do(env, jsonRequest(t, http.MethodPost, "/api/messages/staff", gin.H{"content": "Standup moved to 10am"}), adminCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var posted dto.InternalMessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	require.Equal(t, "1", posted.SenderID)
	require.Equal(t, []string{"1"}, posted.ReadBy)
	require.False(t, posted.Unread)

	// Jane sees one unread message, then marks the channel read.
	janeCookies := loginAs(t, env, "jane@raziqtech.com")
	w = do(env, httptest.NewRequest(http.MethodGet, "/api/messages/staff", nil), janeCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var relay dto.RelayDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relay))
	require.Len(t, relay.Messages, 1)
	require.Equal(t, 1, relay.UnreadCount)
	require.True(t, relay.Messages[0].Unread)

	w = do(env, httptest.NewRequest(http.MethodPost, "/api/messages/staff/read", nil), janeCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(env, httptest.NewRequest(http.MethodGet, "/api/messages/staff", nil), janeCookies)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relay))
	require.Equal(t, 0, relay.UnreadCount)
	require.Equal(t, []string{"1", "2"}, relay.Messages[0].ReadBy)
}

func TestMessageHandler_StaffRelayForbiddenForClient(t *testing.T) {
	env := setupTestEnv(t)
	setupMessageRoutes(t, env)

	w := do(env, jsonRequest(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Sarah Jenkins", "email": "sarah@fintech-inc.com",
	}), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	clientCookies := w.Result().Cookies()

	w = do(env, httptest.NewRequest(http.MethodGet, "/api/messages/staff", nil), clientCookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageHandler_DirectRelayAccess(t *testing.T) {
	env := setupTestEnv(t)
	setupMessageRoutes(t, env)

	adminCookies := loginAs(t, env, "admin@raziqtech.com")
	w := do(env, jsonRequest(t, http.MethodPost, "/api/messages/direct/2", gin.H{"content": "Your access is provisioned"}), adminCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var posted dto.InternalMessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	require.Equal(t, []string{"1"}, posted.ReadBy)
	require.False(t, posted.Unread)

	// Jane reads her own channel; Sam may not.
	janeCookies := loginAs(t, env, "jane@raziqtech.com")
	w = do(env, httptest.NewRequest(http.MethodGet, "/api/messages/direct/2", nil), janeCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var relay dto.RelayDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relay))
	require.Len(t, relay.Messages, 1)

	samCookies := loginAs(t, env, "sam@raziqtech.com")
	w = do(env, httptest.NewRequest(http.MethodGet, "/api/messages/direct/2", nil), samCookies)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The relay key must be an engineer.
	w = do(env, jsonRequest(t, http.MethodPost, "/api/messages/direct/1", gin.H{"content": "wrong key"}), adminCookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}
