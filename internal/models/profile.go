package models

import "time"

type ProfileStatus string

const (
	ProfileStatusApproved        ProfileStatus = "APPROVED"
	ProfileStatusPendingApproval ProfileStatus = "PENDING_APPROVAL"
)

// EmployeeProfile is the public-facing profile backing an EMPLOYEE user.
// Status is PENDING_APPROVAL exactly while a ProfileUpdateEntry for this
// profile is outstanding.
type EmployeeProfile struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Username     string        `json:"username"`
	FullName     string        `json:"full_name"`
	RoleTitle    string        `json:"role_title"`
	Bio          string        `json:"bio"`
	Skills       []string      `json:"skills"`
	ResumeURL    string        `json:"resume_url"`
	PortfolioURL string        `json:"portfolio_url"`
	GithubURL    string        `json:"github_url,omitempty"`
	LinkedinURL  string        `json:"linkedin_url,omitempty"`
	Image        string        `json:"image"`
	ChatEnabled  bool          `json:"chat_enabled"`
	Projects     []string      `json:"projects"`
	Status       ProfileStatus `json:"status"`
}

// ProfileChanges holds a partial update to an employee profile. Nil fields
// are left untouched. This is both the admin's direct-edit payload and the
// change set carried by a ProfileUpdateEntry.
type ProfileChanges struct {
	Username     *string   `json:"username,omitempty"`
	FullName     *string   `json:"full_name,omitempty"`
	RoleTitle    *string   `json:"role_title,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	GithubURL    *string   `json:"github_url,omitempty"`
	LinkedinURL  *string   `json:"linkedin_url,omitempty"`
	Image        *string   `json:"image,omitempty"`
	ChatEnabled  *bool     `json:"chat_enabled,omitempty"`
	Projects     *[]string `json:"projects,omitempty"`
}

// Apply merges the non-nil fields into the profile.
func (c ProfileChanges) Apply(p *EmployeeProfile) {
	if c.Username != nil {
		p.Username = *c.Username
	}
	if c.FullName != nil {
		p.FullName = *c.FullName
	}
	if c.RoleTitle != nil {
		p.RoleTitle = *c.RoleTitle
	}
	if c.Bio != nil {
		p.Bio = *c.Bio
	}
	if c.Skills != nil {
		p.Skills = append([]string(nil), (*c.Skills)...)
	}
	if c.ResumeURL != nil {
		p.ResumeURL = *c.ResumeURL
	}
	if c.PortfolioURL != nil {
		p.PortfolioURL = *c.PortfolioURL
	}
	if c.GithubURL != nil {
		p.GithubURL = *c.GithubURL
	}
	if c.LinkedinURL != nil {
		p.LinkedinURL = *c.LinkedinURL
	}
	if c.Image != nil {
		p.Image = *c.Image
	}
	if c.ChatEnabled != nil {
		p.ChatEnabled = *c.ChatEnabled
	}
	if c.Projects != nil {
		p.Projects = append([]string(nil), (*c.Projects)...)
	}
}

// ProfileUpdateEntry is an employee's pending edit request. It exists only
// between RequestProfileUpdate and the admin's approve/reject resolution.
type ProfileUpdateEntry struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Changes    ProfileChanges `json:"changes"`
	CreatedAt  time.Time      `json:"created_at"`
}
