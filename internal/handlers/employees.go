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
)

// EmployeeHandler coordinates employee provisioning and the profile
// approval workflow.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListTeam returns the approved profiles for the public team page.
func (h *EmployeeHandler) ListTeam(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"team": dto.ToProfileDTOs(h.employeeService.TeamProfiles()),
	})
}

// ListEmployees returns the profiles visible to the current user.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToProfileDTOs(h.employeeService.ListProfiles(user)),
	})
}

// CreateEmployee provisions a new employee user and profile.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Email        string   `json:"email" binding:"required,email"`
		Name         string   `json:"name" binding:"required"`
		Avatar       string   `json:"avatar"`
		Username     string   `json:"username" binding:"required,min=3,max=50"`
		FullName     string   `json:"full_name" binding:"required"`
		RoleTitle    string   `json:"role_title" binding:"required"`
		Bio          string   `json:"bio"`
		Skills       []string `json:"skills"`
		ResumeURL    string   `json:"resume_url"`
		PortfolioURL string   `json:"portfolio_url"`
		GithubURL    string   `json:"github_url"`
		LinkedinURL  string   `json:"linkedin_url"`
		Image        string   `json:"image"`
		ChatEnabled  bool     `json:"chat_enabled"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	user, profile, err := h.employeeService.AddEmployee(actor,
		store.NewUserInput{
			Email:  req.Email,
			Name:   req.Name,
			Avatar: req.Avatar,
		},
		store.NewProfileInput{
			Username:     req.Username,
			FullName:     req.FullName,
			RoleTitle:    req.RoleTitle,
			Bio:          req.Bio,
			Skills:       req.Skills,
			ResumeURL:    req.ResumeURL,
			PortfolioURL: req.PortfolioURL,
			GithubURL:    req.GithubURL,
			LinkedinURL:  req.LinkedinURL,
			Image:        req.Image,
			ChatEnabled:  req.ChatEnabled,
		})
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    dto.ToUserDTO(*user),
		"profile": dto.ToProfileDTO(*profile),
	})
}

// UpdateEmployee applies an admin edit directly, without the approval
// workflow.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	type UpdateEmployeeRequest struct {
		Profile models.ProfileChanges `json:"profile"`
		User    models.UserChanges    `json:"user"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	profile, err := h.employeeService.UpdateEmployee(actor, c.Param("id"), req.Profile, req.User)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// DeleteEmployee removes a profile and its linked user.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	if err := h.employeeService.DeleteEmployee(actor, c.Param("id")); err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted",
	})
}

// GetOwnProfile returns the acting employee's profile.
func (h *EmployeeHandler) GetOwnProfile(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	profile, err := h.employeeService.OwnProfile(actor)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// RequestProfileUpdate files a pending edit for the acting employee's
// profile.
func (h *EmployeeHandler) RequestProfileUpdate(c *gin.Context) {
	var changes models.ProfileChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	entry, err := h.employeeService.RequestProfileUpdate(actor, changes)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPendingUpdateDTO(*entry))
}

// ListPendingUpdates returns the approval queue.
func (h *EmployeeHandler) ListPendingUpdates(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	entries, err := h.employeeService.ListPendingUpdates(actor)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	out := make([]dto.PendingUpdateDTO, len(entries))
	for i, e := range entries {
		out[i] = dto.ToPendingUpdateDTO(e)
	}
	c.JSON(http.StatusOK, gin.H{
		"pending_updates": out,
	})
}

// ApproveUpdate merges a pending edit into its profile.
func (h *EmployeeHandler) ApproveUpdate(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	profile, err := h.employeeService.ApproveProfileUpdate(actor, c.Param("id"))
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// RejectUpdate discards a pending edit.
func (h *EmployeeHandler) RejectUpdate(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	profile, err := h.employeeService.RejectProfileUpdate(actor, c.Param("id"))
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}
