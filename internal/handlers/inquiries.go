package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raziqtech/portal-api/internal/dto"
	apierrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/services"
	"github.com/raziqtech/portal-api/internal/store"
	"github.com/raziqtech/portal-api/internal/utils"
)

// InquiryHandler coordinates contact-form submissions and their follow-up.
type InquiryHandler struct {
	inquiryService *services.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
	}
}

// Submit records a public contact-form submission. No authentication
// required; a logged-in client gets linked to the inquiry.
func (h *InquiryHandler) Submit(c *gin.Context) {
	type SubmitRequest struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		ProjectType string `json:"project_type" binding:"required"`
		Budget      string `json:"budget"`
		Message     string `json:"message" binding:"required"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	inquiry, err := h.inquiryService.Submit(actor, store.NewInquiryInput{
		Name:        req.Name,
		Email:       req.Email,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Message:     req.Message,
	})
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInquiryDTO(*inquiry))
}

// ListInquiries returns the inquiries visible to the current user, paged.
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	inquiries, err := h.inquiryService.List(actor)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	page := utils.PageSlice(inquiries, params)
	out := make([]dto.InquiryDTO, len(page))
	for i, q := range page {
		out[i] = dto.ToInquiryDTO(q)
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": out,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int64(len(inquiries)),
		},
	})
}

// UpdateStatus sets an inquiry's status.
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.InquiryStatus `json:"status" binding:"required,oneof=New Read Archived Converted Replied"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	inquiry, err := h.inquiryService.UpdateStatus(actor, c.Param("id"), req.Status)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInquiryDTO(*inquiry))
}

// Reply appends to an inquiry's thread.
func (h *InquiryHandler) Reply(c *gin.Context) {
	type ReplyRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	inquiry, err := h.inquiryService.Reply(actor, c.Param("id"), req.Content)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInquiryDTO(*inquiry))
}
