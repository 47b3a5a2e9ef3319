package store

import (
	"fmt"
	"time"

	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/utils"
)

// NewProjectInput holds the fields for project creation. Milestones may be
// given without ids; the store assigns them.
type NewProjectInput struct {
	Title             string
	Category          models.ProjectCategory
	Description       string
	Problem           string
	Solution          string
	Outcome           string
	TechStack         []string
	ImageURL          string
	TeamIDs           []string
	Progress          int
	Status            models.ProjectStatus
	Milestones        []models.Milestone
	ClientChatEnabled bool
}

// MilestoneChanges holds a partial update to a milestone.
type MilestoneChanges struct {
	Title              *string    `json:"title,omitempty"`
	IsCompleted        *bool      `json:"is_completed,omitempty"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	AssignedEngineerID *string    `json:"assigned_engineer_id,omitempty"`
}

// AddProject creates a project with an empty chat thread. When milestones
// are present, progress is derived from them immediately.
func (s *Store) AddProject(in NewProjectInput) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := models.Project{
		ID:                utils.NewID(),
		Title:             in.Title,
		Category:          in.Category,
		Description:       in.Description,
		Problem:           in.Problem,
		Solution:          in.Solution,
		Outcome:           in.Outcome,
		TechStack:         append([]string(nil), in.TechStack...),
		ImageURL:          in.ImageURL,
		TeamIDs:           append([]string(nil), in.TeamIDs...),
		Progress:          in.Progress,
		Status:            in.Status,
		Milestones:        withMilestoneIDs(in.Milestones),
		ClientChatEnabled: in.ClientChatEnabled,
		ChatMessages:      []models.ProjectChatMessage{},
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusInPlanning
	}
	project.RecomputeProgress()

	s.projects = append(s.projects, project)
	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionCreated, ID: project.ID})

	out := project.Clone()
	return &out, nil
}

// UpdateProject merges the non-nil fields. Replacing the milestone list
// recomputes progress so the invariant holds on this path too.
func (s *Store) UpdateProject(id string, changes models.ProjectChanges) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}

	changes.Apply(&s.projects[i])
	if changes.Milestones != nil {
		s.projects[i].Milestones = withMilestoneIDs(s.projects[i].Milestones)
		s.projects[i].RecomputeProgress()
	}

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: id})

	out := s.projects[i].Clone()
	return &out, nil
}

// DeleteProject removes the project unconditionally. Inquiries referencing
// the engagement are left untouched.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionDeleted, ID: id})
	return nil
}

// AddMilestone appends a milestone and rederives progress.
func (s *Store) AddMilestone(projectID string, milestone models.Milestone) (*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}

	if milestone.ID == "" {
		milestone.ID = utils.NewID()
	}
	s.projects[i].Milestones = append(s.projects[i].Milestones, milestone)
	s.projects[i].RecomputeProgress()

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: projectID})

	out := milestone
	return &out, nil
}

// UpdateMilestone merges the non-nil fields into one milestone and
// rederives progress.
func (s *Store) UpdateMilestone(projectID, milestoneID string, changes MilestoneChanges) (*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, m, err := s.milestoneIndex(projectID, milestoneID)
	if err != nil {
		return nil, err
	}

	milestone := &s.projects[i].Milestones[m]
	if changes.Title != nil {
		milestone.Title = *changes.Title
	}
	if changes.IsCompleted != nil {
		milestone.IsCompleted = *changes.IsCompleted
	}
	if changes.Deadline != nil {
		deadline := *changes.Deadline
		milestone.Deadline = &deadline
	}
	if changes.AssignedEngineerID != nil {
		milestone.AssignedEngineerID = *changes.AssignedEngineerID
	}
	s.projects[i].RecomputeProgress()

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: projectID})

	out := *milestone
	return &out, nil
}

// DeleteMilestone removes one milestone and rederives progress.
func (s *Store) DeleteMilestone(projectID, milestoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, m, err := s.milestoneIndex(projectID, milestoneID)
	if err != nil {
		return err
	}

	s.projects[i].Milestones = append(s.projects[i].Milestones[:m], s.projects[i].Milestones[m+1:]...)
	s.projects[i].RecomputeProgress()

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: projectID})
	return nil
}

// SetMilestoneCompletion toggles one milestone's completion and rederives
// progress. Authorization (admin or the assigned engineer) is the service
// layer's concern.
func (s *Store) SetMilestoneCompletion(projectID, milestoneID string, completed bool) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, m, err := s.milestoneIndex(projectID, milestoneID)
	if err != nil {
		return nil, err
	}

	s.projects[i].Milestones[m].IsCompleted = completed
	s.projects[i].RecomputeProgress()

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: projectID})

	out := s.projects[i].Clone()
	return &out, nil
}

// AddProjectChatMessage appends to the project's chat thread with a
// server-assigned id and timestamp.
func (s *Store) AddProjectChatMessage(projectID string, sender models.User, content string, visibleToClient bool) (*models.ProjectChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}

	message := models.ProjectChatMessage{
		ID:                utils.NewID(),
		SenderID:          sender.ID,
		SenderName:        sender.Name,
		SenderRole:        sender.Role,
		Content:           content,
		Timestamp:         now(),
		IsVisibleToClient: visibleToClient,
	}
	s.projects[i].ChatMessages = append(s.projects[i].ChatMessages, message)

	s.commit(bus.Event{Entity: bus.EntityProject, Action: bus.ActionUpdated, ID: projectID})

	out := message
	return &out, nil
}

func (s *Store) milestoneIndex(projectID, milestoneID string) (int, int, error) {
	i := s.projectIndex(projectID)
	if i < 0 {
		return 0, 0, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	for m, milestone := range s.projects[i].Milestones {
		if milestone.ID == milestoneID {
			return i, m, nil
		}
	}
	return 0, 0, fmt.Errorf("milestone %s: %w", milestoneID, apperrors.ErrNotFound)
}

func withMilestoneIDs(milestones []models.Milestone) []models.Milestone {
	if milestones == nil {
		return nil
	}
	out := append([]models.Milestone(nil), milestones...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = utils.NewID()
		}
	}
	return out
}
