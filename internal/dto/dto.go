package dto

import (
	"time"

	"github.com/raziqtech/portal-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	Avatar    string          `json:"avatar,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfileDTO represents an employee profile in API responses
type ProfileDTO struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	Username     string               `json:"username"`
	FullName     string               `json:"full_name"`
	RoleTitle    string               `json:"role_title"`
	Bio          string               `json:"bio"`
	Skills       []string             `json:"skills"`
	ResumeURL    string               `json:"resume_url"`
	PortfolioURL string               `json:"portfolio_url"`
	GithubURL    string               `json:"github_url,omitempty"`
	LinkedinURL  string               `json:"linkedin_url,omitempty"`
	Image        string               `json:"image"`
	ChatEnabled  bool                 `json:"chat_enabled"`
	Projects     []string             `json:"projects"`
	Status       models.ProfileStatus `json:"status"`
}

// PendingUpdateDTO represents a queued profile edit in API responses
type PendingUpdateDTO struct {
	ID         string                `json:"id"`
	EmployeeID string                `json:"employee_id"`
	Changes    models.ProfileChanges `json:"changes"`
	CreatedAt  time.Time             `json:"created_at"`
}

// ChatMessageDTO represents a project chat message in API responses
type ChatMessageDTO struct {
	ID                string          `json:"id"`
	SenderID          string          `json:"sender_id"`
	SenderName        string          `json:"sender_name"`
	SenderRole        models.UserRole `json:"sender_role"`
	Content           string          `json:"content"`
	Timestamp         time.Time       `json:"timestamp"`
	IsVisibleToClient bool            `json:"is_visible_to_client"`
}

// ProjectDTO represents a project in API responses. ChatMessages carry only
// what the requesting actor is allowed to see.
type ProjectDTO struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	Category          models.ProjectCategory `json:"category"`
	Description       string                 `json:"description"`
	Problem           string                 `json:"problem"`
	Solution          string                 `json:"solution"`
	Outcome           string                 `json:"outcome"`
	TechStack         []string               `json:"tech_stack"`
	ImageURL          string                 `json:"image_url"`
	TeamIDs           []string               `json:"team_ids"`
	Progress          int                    `json:"progress"`
	Status            models.ProjectStatus   `json:"status"`
	Milestones        []models.Milestone     `json:"milestones,omitempty"`
	ClientChatEnabled bool                   `json:"client_chat_enabled"`
	ChatMessages      []ChatMessageDTO       `json:"chat_messages"`
}

// PortfolioItemDTO represents a project on the public case-study pages:
// the marketing fields only, no milestones and no chat.
type PortfolioItemDTO struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Category    models.ProjectCategory `json:"category"`
	Description string                 `json:"description"`
	Problem     string                 `json:"problem"`
	Solution    string                 `json:"solution"`
	Outcome     string                 `json:"outcome"`
	TechStack   []string               `json:"tech_stack"`
	ImageURL    string                 `json:"image_url"`
	TeamIDs     []string               `json:"team_ids"`
	Status      models.ProjectStatus   `json:"status"`
}

// InquiryMessageDTO represents one reply in an inquiry thread
type InquiryMessageDTO struct {
	ID         string          `json:"id"`
	SenderID   string          `json:"sender_id"`
	SenderName string          `json:"sender_name"`
	SenderRole models.UserRole `json:"sender_role"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InquiryDTO represents an inquiry in API responses
type InquiryDTO struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"client_id,omitempty"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	ProjectType string               `json:"project_type"`
	Budget      string               `json:"budget"`
	Message     string               `json:"message"`
	Status      models.InquiryStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	Thread      []InquiryMessageDTO  `json:"thread"`
}

// InternalMessageDTO represents a relay message in API responses. Unread is
// computed per requesting user.
type InternalMessageDTO struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ReadBy     []string  `json:"read_by"`
	Unread     bool      `json:"unread"`
}

// RelayDTO is a relay channel plus the requesting user's unread count.
type RelayDTO struct {
	Messages    []InternalMessageDTO `json:"messages"`
	UnreadCount int                  `json:"unread_count"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

// ToProfileDTO converts an EmployeeProfile model to ProfileDTO
func ToProfileDTO(profile models.EmployeeProfile) ProfileDTO {
	return ProfileDTO{
		ID:           profile.ID,
		UserID:       profile.UserID,
		Username:     profile.Username,
		FullName:     profile.FullName,
		RoleTitle:    profile.RoleTitle,
		Bio:          profile.Bio,
		Skills:       profile.Skills,
		ResumeURL:    profile.ResumeURL,
		PortfolioURL: profile.PortfolioURL,
		GithubURL:    profile.GithubURL,
		LinkedinURL:  profile.LinkedinURL,
		Image:        profile.Image,
		ChatEnabled:  profile.ChatEnabled,
		Projects:     profile.Projects,
		Status:       profile.Status,
	}
}

// ToProfileDTOs converts a slice of profiles
func ToProfileDTOs(profiles []models.EmployeeProfile) []ProfileDTO {
	out := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		out[i] = ToProfileDTO(p)
	}
	return out
}

// ToPendingUpdateDTO converts a ProfileUpdateEntry to PendingUpdateDTO
func ToPendingUpdateDTO(entry models.ProfileUpdateEntry) PendingUpdateDTO {
	return PendingUpdateDTO{
		ID:         entry.ID,
		EmployeeID: entry.EmployeeID,
		Changes:    entry.Changes,
		CreatedAt:  entry.CreatedAt,
	}
}

// ToChatMessageDTO converts a ProjectChatMessage to ChatMessageDTO
func ToChatMessageDTO(message models.ProjectChatMessage) ChatMessageDTO {
	return ChatMessageDTO{
		ID:                message.ID,
		SenderID:          message.SenderID,
		SenderName:        message.SenderName,
		SenderRole:        message.SenderRole,
		Content:           message.Content,
		Timestamp:         message.Timestamp,
		IsVisibleToClient: message.IsVisibleToClient,
	}
}

// ToChatMessageDTOs converts a slice of chat messages
func ToChatMessageDTOs(messages []models.ProjectChatMessage) []ChatMessageDTO {
	out := make([]ChatMessageDTO, len(messages))
	for i, m := range messages {
		out[i] = ToChatMessageDTO(m)
	}
	return out
}

// ToProjectDTO converts a Project to ProjectDTO with the actor-visible
// slice of the chat thread.
func ToProjectDTO(project models.Project, visibleChat []models.ProjectChatMessage) ProjectDTO {
	return ProjectDTO{
		ID:                project.ID,
		Title:             project.Title,
		Category:          project.Category,
		Description:       project.Description,
		Problem:           project.Problem,
		Solution:          project.Solution,
		Outcome:           project.Outcome,
		TechStack:         project.TechStack,
		ImageURL:          project.ImageURL,
		TeamIDs:           project.TeamIDs,
		Progress:          project.Progress,
		Status:            project.Status,
		Milestones:        project.Milestones,
		ClientChatEnabled: project.ClientChatEnabled,
		ChatMessages:      ToChatMessageDTOs(visibleChat),
	}
}

// ToPortfolioItemDTO converts a Project to its public case-study shape
func ToPortfolioItemDTO(project models.Project) PortfolioItemDTO {
	return PortfolioItemDTO{
		ID:          project.ID,
		Title:       project.Title,
		Category:    project.Category,
		Description: project.Description,
		Problem:     project.Problem,
		Solution:    project.Solution,
		Outcome:     project.Outcome,
		TechStack:   project.TechStack,
		ImageURL:    project.ImageURL,
		TeamIDs:     project.TeamIDs,
		Status:      project.Status,
	}
}

// ToInquiryDTO converts an Inquiry to InquiryDTO
func ToInquiryDTO(inquiry models.Inquiry) InquiryDTO {
	thread := make([]InquiryMessageDTO, len(inquiry.Thread))
	for i, m := range inquiry.Thread {
		thread[i] = InquiryMessageDTO{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			SenderRole: m.SenderRole,
			Content:    m.Content,
			CreatedAt:  m.CreatedAt,
		}
	}
	return InquiryDTO{
		ID:          inquiry.ID,
		ClientID:    inquiry.ClientID,
		Name:        inquiry.Name,
		Email:       inquiry.Email,
		ProjectType: inquiry.ProjectType,
		Budget:      inquiry.Budget,
		Message:     inquiry.Message,
		Status:      inquiry.Status,
		CreatedAt:   inquiry.CreatedAt,
		Thread:      thread,
	}
}

// ToInternalMessageDTO converts a relay message for the requesting user
func ToInternalMessageDTO(m models.InternalMessage, userID string) InternalMessageDTO {
	return InternalMessageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		ReadBy:     m.ReadBy,
		Unread:     !m.ReadByUser(userID),
	}
}

// ToRelayDTO converts a relay channel for the requesting user
func ToRelayDTO(messages []models.InternalMessage, userID string) RelayDTO {
	out := RelayDTO{Messages: make([]InternalMessageDTO, len(messages))}
	for i, m := range messages {
		out.Messages[i] = ToInternalMessageDTO(m, userID)
		if out.Messages[i].Unread {
			out.UnreadCount++
		}
	}
	return out
}
