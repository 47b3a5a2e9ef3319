package services

import (
	"fmt"

	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/policy"
	"github.com/raziqtech/portal-api/internal/store"
)

// ProjectService handles project lifecycle, milestones and project chat.
type ProjectService struct {
	store *store.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(st *store.Store) *ProjectService {
	return &ProjectService{store: st}
}

// ListProjects returns the projects the actor may see.
func (s *ProjectService) ListProjects(actor *models.User) []models.Project {
	out := []models.Project{}
	for _, p := range s.store.ListProjects() {
		if policy.CanViewProject(actor, p) {
			out = append(out, p)
		}
	}
	return out
}

// Portfolio returns every project for the public case-study pages.
func (s *ProjectService) Portfolio() []models.Project {
	return s.store.ListProjects()
}

// GetProject returns one project when the actor may see it.
func (s *ProjectService) GetProject(actor *models.User, id string) (*models.Project, error) {
	project, err := s.store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewProject(actor, *project) {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrUnauthorized)
	}
	return project, nil
}

// CreateProject creates a project. Admin only.
func (s *ProjectService) CreateProject(actor *models.User, in store.NewProjectInput) (*models.Project, error) {
	if !policy.CanManageProjects(actor) {
		return nil, fmt.Errorf("project creation is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.AddProject(in)
}

// UpdateProject merges partial changes. Admin only.
func (s *ProjectService) UpdateProject(actor *models.User, id string, changes models.ProjectChanges) (*models.Project, error) {
	if !policy.CanManageProjects(actor) {
		return nil, fmt.Errorf("project edits are admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.UpdateProject(id, changes)
}

// DeleteProject removes a project. Admin only.
func (s *ProjectService) DeleteProject(actor *models.User, id string) error {
	if !policy.CanManageProjects(actor) {
		return fmt.Errorf("project deletion is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.DeleteProject(id)
}

// AddMilestone appends a milestone. Admin only.
func (s *ProjectService) AddMilestone(actor *models.User, projectID string, milestone models.Milestone) (*models.Milestone, error) {
	if !policy.CanManageProjects(actor) {
		return nil, fmt.Errorf("milestone management is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.AddMilestone(projectID, milestone)
}

// UpdateMilestone merges partial milestone changes. Admin only.
func (s *ProjectService) UpdateMilestone(actor *models.User, projectID, milestoneID string, changes store.MilestoneChanges) (*models.Milestone, error) {
	if !policy.CanManageProjects(actor) {
		return nil, fmt.Errorf("milestone management is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.UpdateMilestone(projectID, milestoneID, changes)
}

// DeleteMilestone removes a milestone. Admin only.
func (s *ProjectService) DeleteMilestone(actor *models.User, projectID, milestoneID string) error {
	if !policy.CanManageProjects(actor) {
		return fmt.Errorf("milestone management is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.DeleteMilestone(projectID, milestoneID)
}

// ToggleMilestone flips one milestone's completion. Allowed for the admin
// and for the engineer the milestone is assigned to. Enforced here, so a
// direct call without a UI in front of it is rejected the same way.
func (s *ProjectService) ToggleMilestone(actor *models.User, projectID, milestoneID string, completed bool) (*models.Project, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	var milestone *models.Milestone
	for i := range project.Milestones {
		if project.Milestones[i].ID == milestoneID {
			milestone = &project.Milestones[i]
			break
		}
	}
	if milestone == nil {
		return nil, fmt.Errorf("milestone %s: %w", milestoneID, apperrors.ErrNotFound)
	}
	if !policy.CanToggleMilestone(actor, *milestone) {
		return nil, fmt.Errorf("milestone %s is not assigned to you: %w", milestoneID, apperrors.ErrUnauthorized)
	}
	return s.store.SetMilestoneCompletion(projectID, milestoneID, completed)
}

// ChatThread returns the project chat filtered for the actor.
func (s *ProjectService) ChatThread(actor *models.User, projectID string) ([]models.ProjectChatMessage, error) {
	project, err := s.GetProject(actor, projectID)
	if err != nil {
		return nil, err
	}
	return policy.VisibleChatMessages(actor, *project), nil
}

// PostChatMessage appends to the project chat. Staff choose whether the
// message is client-visible; a client's own messages always are.
func (s *ProjectService) PostChatMessage(actor *models.User, projectID, content string, visibleToClient bool) (*models.ProjectChatMessage, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAppendProjectChat(actor, *project) {
		return nil, fmt.Errorf("project %s chat: %w", projectID, apperrors.ErrUnauthorized)
	}
	if actor.Role == models.RoleClient {
		visibleToClient = true
	}
	return s.store.AddProjectChatMessage(projectID, *actor, content, visibleToClient)
}
