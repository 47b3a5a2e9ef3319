// Package policy holds the role-based visibility and editability rules.
// Functions are pure over (actor, entity) so the service layer can enforce
// them on every call path, not just the ones a UI happens to expose.
// A nil actor is an unauthenticated reader.
package policy

import (
	"strings"

	"github.com/raziqtech/portal-api/internal/models"
)

func isAdmin(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}

func isStaff(actor *models.User) bool {
	return actor != nil && (actor.Role == models.RoleAdmin || actor.Role == models.RoleEmployee)
}

// CanManageEmployees gates employee provisioning, direct edits and
// deletion, and the approval queue.
func CanManageEmployees(actor *models.User) bool {
	return isAdmin(actor)
}

// CanViewProfile reports whether the actor may read the profile. Approved
// profiles are public (the team page shows them); a pending profile is
// visible only to the admin and its owner.
func CanViewProfile(actor *models.User, profile models.EmployeeProfile) bool {
	if profile.Status == models.ProfileStatusApproved {
		return true
	}
	return isAdmin(actor) || (actor != nil && actor.ID == profile.UserID)
}

// CanRequestProfileUpdate reports whether the actor may file an update
// request for the profile. Only the owning employee edits this way; the
// admin edits directly instead.
func CanRequestProfileUpdate(actor *models.User, profile models.EmployeeProfile) bool {
	return actor != nil && actor.Role == models.RoleEmployee && actor.ID == profile.UserID
}

// CanViewProject reports whether the actor may read the project. Admin
// sees all, an engineer sees projects they are on the team of, and a
// client sees every project; there is no client-to-project ownership
// link, a documented simplification carried over from the source system.
func CanViewProject(actor *models.User, project models.Project) bool {
	if isAdmin(actor) {
		return true
	}
	if actor == nil {
		return false
	}
	switch actor.Role {
	case models.RoleEmployee:
		return onTeam(actor.ID, project)
	case models.RoleClient:
		return true
	}
	return false
}

// CanManageProjects gates project creation, partial edits, deletion and
// milestone create/edit/delete.
func CanManageProjects(actor *models.User) bool {
	return isAdmin(actor)
}

// CanToggleMilestone reports whether the actor may flip the milestone's
// completion: the admin, or the engineer the milestone is assigned to.
func CanToggleMilestone(actor *models.User, milestone models.Milestone) bool {
	if isAdmin(actor) {
		return true
	}
	return actor != nil &&
		actor.Role == models.RoleEmployee &&
		milestone.AssignedEngineerID != "" &&
		milestone.AssignedEngineerID == actor.ID
}

// CanAppendProjectChat reports whether the actor may post to the project's
// chat. Clients additionally need the client channel switched on.
func CanAppendProjectChat(actor *models.User, project models.Project) bool {
	if isAdmin(actor) {
		return true
	}
	if actor == nil {
		return false
	}
	switch actor.Role {
	case models.RoleEmployee:
		return onTeam(actor.ID, project)
	case models.RoleClient:
		return project.ClientChatEnabled
	}
	return false
}

// VisibleChatMessages filters the project's chat thread for the actor.
// Staff on the project see everything; a client sees only client-visible
// messages, and nothing at all while the client channel is off.
func VisibleChatMessages(actor *models.User, project models.Project) []models.ProjectChatMessage {
	if isAdmin(actor) || (actor != nil && actor.Role == models.RoleEmployee && onTeam(actor.ID, project)) {
		return append([]models.ProjectChatMessage{}, project.ChatMessages...)
	}
	if actor != nil && actor.Role == models.RoleClient && project.ClientChatEnabled {
		out := []models.ProjectChatMessage{}
		for _, m := range project.ChatMessages {
			if m.IsVisibleToClient {
				out = append(out, m)
			}
		}
		return out
	}
	return []models.ProjectChatMessage{}
}

// CanViewInquiry reports whether the actor may read the inquiry. Staff see
// all; a client sees their own, matched by client id or email.
func CanViewInquiry(actor *models.User, inquiry models.Inquiry) bool {
	if isStaff(actor) {
		return true
	}
	if actor == nil || actor.Role != models.RoleClient {
		return false
	}
	if inquiry.ClientID != "" && inquiry.ClientID == actor.ID {
		return true
	}
	return strings.EqualFold(inquiry.Email, actor.Email)
}

// CanUpdateInquiry gates status transitions and replies.
func CanUpdateInquiry(actor *models.User) bool {
	return isStaff(actor)
}

// CanUseStaffRelay gates the shared staff channel.
func CanUseStaffRelay(actor *models.User) bool {
	return isStaff(actor)
}

// CanUseDirectRelay gates one engineer's direct-admin channel: the admin,
// or that engineer alone.
func CanUseDirectRelay(actor *models.User, engineerID string) bool {
	if isAdmin(actor) {
		return true
	}
	return actor != nil && actor.Role == models.RoleEmployee && actor.ID == engineerID
}

func onTeam(userID string, project models.Project) bool {
	for _, id := range project.TeamIDs {
		if id == userID {
			return true
		}
	}
	return false
}
