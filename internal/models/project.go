package models

import (
	"math"
	"time"
)

type ProjectCategory string

const (
	CategoryWeb    ProjectCategory = "Web"
	CategoryMobile ProjectCategory = "Mobile"
	CategoryAI     ProjectCategory = "AI"
)

type ProjectStatus string

const (
	ProjectStatusInPlanning    ProjectStatus = "IN_PLANNING"
	ProjectStatusInDevelopment ProjectStatus = "IN_DEVELOPMENT"
	ProjectStatusStaging       ProjectStatus = "STAGING"
	ProjectStatusCompleted     ProjectStatus = "COMPLETED"
)

// Project is a client engagement: portfolio case study, milestone plan and
// project chat in one record. TeamIDs reference EMPLOYEE users.
type Project struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Category          ProjectCategory      `json:"category"`
	Description       string               `json:"description"`
	Problem           string               `json:"problem"`
	Solution          string               `json:"solution"`
	Outcome           string               `json:"outcome"`
	TechStack         []string             `json:"tech_stack"`
	ImageURL          string               `json:"image_url"`
	TeamIDs           []string             `json:"team_ids"`
	Progress          int                  `json:"progress"`
	Status            ProjectStatus        `json:"status"`
	Milestones        []Milestone          `json:"milestones,omitempty"`
	ClientChatEnabled bool                 `json:"client_chat_enabled"`
	ChatMessages      []ProjectChatMessage `json:"chat_messages"`
}

type Milestone struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	IsCompleted        bool       `json:"is_completed"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	AssignedEngineerID string     `json:"assigned_engineer_id,omitempty"`
}

// ProjectChatMessage is one entry in a project's chat thread. The thread is
// append-only and insertion-ordered.
type ProjectChatMessage struct {
	ID                string    `json:"id"`
	SenderID          string    `json:"sender_id"`
	SenderName        string    `json:"sender_name"`
	SenderRole        UserRole  `json:"sender_role"`
	Content           string    `json:"content"`
	Timestamp         time.Time `json:"timestamp"`
	IsVisibleToClient bool      `json:"is_visible_to_client"`
}

// ProjectChanges holds a partial update to a project. Nil fields are left
// untouched. ChatMessages are not part of it: the chat thread is append-only
// and mutated only through its own operation.
type ProjectChanges struct {
	Title             *string          `json:"title,omitempty"`
	Category          *ProjectCategory `json:"category,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Problem           *string          `json:"problem,omitempty"`
	Solution          *string          `json:"solution,omitempty"`
	Outcome           *string          `json:"outcome,omitempty"`
	TechStack         *[]string        `json:"tech_stack,omitempty"`
	ImageURL          *string          `json:"image_url,omitempty"`
	TeamIDs           *[]string        `json:"team_ids,omitempty"`
	Progress          *int             `json:"progress,omitempty"`
	Status            *ProjectStatus   `json:"status,omitempty"`
	Milestones        *[]Milestone     `json:"milestones,omitempty"`
	ClientChatEnabled *bool            `json:"client_chat_enabled,omitempty"`
}

// Apply merges the non-nil fields into the project.
func (c ProjectChanges) Apply(p *Project) {
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Problem != nil {
		p.Problem = *c.Problem
	}
	if c.Solution != nil {
		p.Solution = *c.Solution
	}
	if c.Outcome != nil {
		p.Outcome = *c.Outcome
	}
	if c.TechStack != nil {
		p.TechStack = append([]string(nil), (*c.TechStack)...)
	}
	if c.ImageURL != nil {
		p.ImageURL = *c.ImageURL
	}
	if c.TeamIDs != nil {
		p.TeamIDs = append([]string(nil), (*c.TeamIDs)...)
	}
	if c.Progress != nil {
		p.Progress = *c.Progress
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if c.Milestones != nil {
		p.Milestones = append([]Milestone(nil), (*c.Milestones)...)
	}
	if c.ClientChatEnabled != nil {
		p.ClientChatEnabled = *c.ClientChatEnabled
	}
}

// ComputeProgress returns round(100 * completed / total) for a milestone
// list, or -1 when the list is empty (progress stays manually managed).
func ComputeProgress(milestones []Milestone) int {
	if len(milestones) == 0 {
		return -1
	}
	completed := 0
	for _, m := range milestones {
		if m.IsCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(milestones))))
}

// RecomputeProgress applies the milestone-derived progress to the project
// when it has milestones. It is called on every mutation path that touches
// the milestone list.
func (p *Project) RecomputeProgress() {
	if v := ComputeProgress(p.Milestones); v >= 0 {
		p.Progress = v
	}
}
