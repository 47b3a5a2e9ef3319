package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raziqtech/portal-api/internal/dto"
	apierrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/policy"
	"github.com/raziqtech/portal-api/internal/services"
	"github.com/raziqtech/portal-api/internal/store"
)

// ProjectHandler coordinates project lifecycle, milestones and chat.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListPortfolio returns every project in its public case-study shape.
func (h *ProjectHandler) ListPortfolio(c *gin.Context) {
	projects := h.projectService.Portfolio()
	out := make([]dto.PortfolioItemDTO, len(projects))
	for i, p := range projects {
		out[i] = dto.ToPortfolioItemDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{
		"portfolio": out,
	})
}

// ListProjects returns the projects visible to the current user, each with
// the chat slice that user may see.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	projects := h.projectService.ListProjects(actor)
	out := make([]dto.ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = dto.ToProjectDTO(p, policy.VisibleChatMessages(actor, p))
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": out,
	})
}

// GetProject returns one project with the actor-visible chat.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	project, err := h.projectService.GetProject(actor, c.Param("id"))
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, policy.VisibleChatMessages(actor, *project)))
}

type milestoneRequest struct {
	Title              string     `json:"title" binding:"required"`
	IsCompleted        bool       `json:"is_completed"`
	Deadline           *time.Time `json:"deadline"`
	AssignedEngineerID string     `json:"assigned_engineer_id"`
}

// CreateProject creates a new project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Title             string                 `json:"title" binding:"required"`
		Category          models.ProjectCategory `json:"category" binding:"required,oneof=Web Mobile AI"`
		Description       string                 `json:"description"`
		Problem           string                 `json:"problem"`
		Solution          string                 `json:"solution"`
		Outcome           string                 `json:"outcome"`
		TechStack         []string               `json:"tech_stack"`
		ImageURL          string                 `json:"image_url"`
		TeamIDs           []string               `json:"team_ids"`
		Progress          int                    `json:"progress" binding:"min=0,max=100"`
		Status            models.ProjectStatus   `json:"status" binding:"omitempty,oneof=IN_PLANNING IN_DEVELOPMENT STAGING COMPLETED"`
		Milestones        []milestoneRequest     `json:"milestones"`
		ClientChatEnabled bool                   `json:"client_chat_enabled"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	milestones := make([]models.Milestone, len(req.Milestones))
	for i, m := range req.Milestones {
		milestones[i] = models.Milestone{
			Title:              m.Title,
			IsCompleted:        m.IsCompleted,
			Deadline:           m.Deadline,
			AssignedEngineerID: m.AssignedEngineerID,
		}
	}

	actor, _ := middleware.GetCurrentUser(c)
	project, err := h.projectService.CreateProject(actor, store.NewProjectInput{
		Title:             req.Title,
		Category:          req.Category,
		Description:       req.Description,
		Problem:           req.Problem,
		Solution:          req.Solution,
		Outcome:           req.Outcome,
		TechStack:         req.TechStack,
		ImageURL:          req.ImageURL,
		TeamIDs:           req.TeamIDs,
		Progress:          req.Progress,
		Status:            req.Status,
		Milestones:        milestones,
		ClientChatEnabled: req.ClientChatEnabled,
	})
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, project.ChatMessages))
}

// UpdateProject merges partial changes into a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var changes models.ProjectChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	project, err := h.projectService.UpdateProject(actor, c.Param("id"), changes)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, project.ChatMessages))
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	if err := h.projectService.DeleteProject(actor, c.Param("id")); err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted",
	})
}

// AddMilestone appends a milestone to a project.
func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	var req milestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	milestone, err := h.projectService.AddMilestone(actor, c.Param("id"), models.Milestone{
		Title:              req.Title,
		IsCompleted:        req.IsCompleted,
		Deadline:           req.Deadline,
		AssignedEngineerID: req.AssignedEngineerID,
	})
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

// UpdateMilestone merges partial changes into one milestone.
func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	var changes store.MilestoneChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	milestone, err := h.projectService.UpdateMilestone(actor, c.Param("id"), c.Param("milestone_id"), changes)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// DeleteMilestone removes one milestone.
func (h *ProjectHandler) DeleteMilestone(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	if err := h.projectService.DeleteMilestone(actor, c.Param("id"), c.Param("milestone_id")); err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Milestone deleted",
	})
}

// ToggleMilestone flips one milestone's completion.
func (h *ProjectHandler) ToggleMilestone(c *gin.Context) {
	type ToggleRequest struct {
		IsCompleted bool `json:"is_completed"`
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	project, err := h.projectService.ToggleMilestone(actor, c.Param("id"), c.Param("milestone_id"), req.IsCompleted)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, policy.VisibleChatMessages(actor, *project)))
}

// GetChat returns the actor-visible slice of the project chat.
func (h *ProjectHandler) GetChat(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)
	messages, err := h.projectService.ChatThread(actor, c.Param("id"))
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.ToChatMessageDTOs(messages),
	})
}

// PostChat appends a message to the project chat.
func (h *ProjectHandler) PostChat(c *gin.Context) {
	type PostChatRequest struct {
		Content           string `json:"content" binding:"required"`
		IsVisibleToClient bool   `json:"is_visible_to_client"`
	}

	var req PostChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	message, err := h.projectService.PostChatMessage(actor, c.Param("id"), req.Content, req.IsVisibleToClient)
	if err != nil {
		apierrors.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChatMessageDTO(*message))
}
