package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raziqtech/portal-api/internal/dto"
	apierrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/services"
)

// MessageHandler coordinates the internal relay channels.
type MessageHandler struct {
	messagingService *services.MessagingService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messagingService *services.MessagingService) *MessageHandler {
	return &MessageHandler{
		messagingService: messagingService,
	}
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetStaffRelay returns the shared staff channel with the caller's unread
// count.
func (h *MessageHandler) GetStaffRelay(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	messages, err := h.messagingService.StaffRelay(actor)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRelayDTO(messages, actor.ID))
}

// PostStaffMessage appends to the shared staff channel.
func (h *MessageHandler) PostStaffMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	message, err := h.messagingService.PostStaff(actor, req.Content)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInternalMessageDTO(*message, actor.ID))
}

// MarkStaffRead marks the whole staff channel read for the caller.
func (h *MessageHandler) MarkStaffRead(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	if err := h.messagingService.MarkStaffRead(actor); err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Relay marked read",
	})
}

// GetDirectRelay returns one engineer's direct-admin channel.
func (h *MessageHandler) GetDirectRelay(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	messages, err := h.messagingService.DirectRelay(actor, c.Param("engineer_id"))
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRelayDTO(messages, actor.ID))
}

// PostDirectMessage appends to one engineer's direct-admin channel.
func (h *MessageHandler) PostDirectMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	message, err := h.messagingService.PostDirect(actor, c.Param("engineer_id"), req.Content)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInternalMessageDTO(*message, actor.ID))
}

// MarkDirectRead marks one engineer's direct channel read for the caller.
func (h *MessageHandler) MarkDirectRead(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	if err := h.messagingService.MarkDirectRead(actor, c.Param("engineer_id")); err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Relay marked read",
	})
}
