package store

import (
	"fmt"
	"strings"

	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/utils"
)

// NewUserInput holds the user fields for employee provisioning and signup.
type NewUserInput struct {
	Email  string
	Name   string
	Avatar string
}

// NewProfileInput holds the profile fields for employee provisioning.
type NewProfileInput struct {
	Username     string
	FullName     string
	RoleTitle    string
	Bio          string
	Skills       []string
	ResumeURL    string
	PortfolioURL string
	GithubURL    string
	LinkedinURL  string
	Image        string
	ChatEnabled  bool
	Projects     []string
}

// AddEmployee provisions an EMPLOYEE user and its profile atomically. The
// profile starts APPROVED: admin provisioning does not go through the
// approval workflow.
func (s *Store) AddEmployee(userIn NewUserInput, profileIn NewProfileInput) (*models.User, *models.EmployeeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(userIn.Email) {
		return nil, nil, fmt.Errorf("email %s: %w", userIn.Email, apperrors.ErrDuplicateEmail)
	}
	for _, p := range s.profiles {
		if p.Username == profileIn.Username {
			return nil, nil, fmt.Errorf("username %s: %w", profileIn.Username, apperrors.ErrDuplicateUsername)
		}
	}

	user := models.User{
		ID:        utils.NewID(),
		Email:     userIn.Email,
		Name:      userIn.Name,
		Role:      models.RoleEmployee,
		Avatar:    userIn.Avatar,
		CreatedAt: now(),
	}
	profile := models.EmployeeProfile{
		ID:           utils.NewID(),
		UserID:       user.ID,
		Username:     profileIn.Username,
		FullName:     profileIn.FullName,
		RoleTitle:    profileIn.RoleTitle,
		Bio:          profileIn.Bio,
		Skills:       append([]string(nil), profileIn.Skills...),
		ResumeURL:    profileIn.ResumeURL,
		PortfolioURL: profileIn.PortfolioURL,
		GithubURL:    profileIn.GithubURL,
		LinkedinURL:  profileIn.LinkedinURL,
		Image:        profileIn.Image,
		ChatEnabled:  profileIn.ChatEnabled,
		Projects:     append([]string(nil), profileIn.Projects...),
		Status:       models.ProfileStatusApproved,
	}

	s.users = append(s.users, user)
	s.profiles = append(s.profiles, profile)
	s.commit(
		bus.Event{Entity: bus.EntityUser, Action: bus.ActionCreated, ID: user.ID},
		bus.Event{Entity: bus.EntityProfile, Action: bus.ActionCreated, ID: profile.ID},
	)

	userOut := user
	profileOut := profile.Clone()
	return &userOut, &profileOut, nil
}

// UpdateEmployee applies profile and user changes immediately. This is the
// admin path: it bypasses the approval workflow by design.
func (s *Store) UpdateEmployee(profileID string, profileChanges models.ProfileChanges, userChanges models.UserChanges) (*models.EmployeeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(profileID)
	if i < 0 {
		return nil, fmt.Errorf("profile %s: %w", profileID, apperrors.ErrNotFound)
	}

	if userChanges.Email != nil {
		u := s.userIndex(s.profiles[i].UserID)
		if u >= 0 && !strings.EqualFold(s.users[u].Email, *userChanges.Email) && s.emailTaken(*userChanges.Email) {
			return nil, fmt.Errorf("email %s: %w", *userChanges.Email, apperrors.ErrDuplicateEmail)
		}
	}

	profileChanges.Apply(&s.profiles[i])
	events := []bus.Event{{Entity: bus.EntityProfile, Action: bus.ActionUpdated, ID: profileID}}

	if u := s.userIndex(s.profiles[i].UserID); u >= 0 {
		if userChanges.Email != nil {
			s.users[u].Email = *userChanges.Email
		}
		if userChanges.Name != nil {
			s.users[u].Name = *userChanges.Name
		}
		if userChanges.Avatar != nil {
			s.users[u].Avatar = *userChanges.Avatar
		}
		events = append(events, bus.Event{Entity: bus.EntityUser, Action: bus.ActionUpdated, ID: s.users[u].ID})
	}

	s.commit(events...)

	profile := s.profiles[i].Clone()
	return &profile, nil
}

// DeleteEmployee removes the profile and cascades to exactly the linked
// user. Nothing else changes: project team lists keep the stale id, same
// as the source system.
func (s *Store) DeleteEmployee(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(profileID)
	if i < 0 {
		return fmt.Errorf("profile %s: %w", profileID, apperrors.ErrNotFound)
	}

	userID := s.profiles[i].UserID
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)

	events := []bus.Event{{Entity: bus.EntityProfile, Action: bus.ActionDeleted, ID: profileID}}
	if u := s.userIndex(userID); u >= 0 {
		s.users = append(s.users[:u], s.users[u+1:]...)
		events = append(events, bus.Event{Entity: bus.EntityUser, Action: bus.ActionDeleted, ID: userID})
	}

	s.commit(events...)
	return nil
}

// RequestProfileUpdate records an employee's pending edit and flips the
// profile to PENDING_APPROVAL. At most one request may be outstanding per
// profile; a second request is rejected rather than silently orphaning the
// first.
func (s *Store) RequestProfileUpdate(employeeID string, changes models.ProfileChanges) (*models.ProfileUpdateEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(employeeID)
	if i < 0 {
		return nil, fmt.Errorf("profile %s: %w", employeeID, apperrors.ErrNotFound)
	}
	for _, e := range s.pendingUpdates {
		if e.EmployeeID == employeeID {
			return nil, fmt.Errorf("profile %s already has a pending update: %w", employeeID, apperrors.ErrInvalidApprovalState)
		}
	}

	entry := models.ProfileUpdateEntry{
		ID:         utils.NewID(),
		EmployeeID: employeeID,
		Changes:    changes.Clone(),
		CreatedAt:  now(),
	}
	s.pendingUpdates = append(s.pendingUpdates, entry)
	s.profiles[i].Status = models.ProfileStatusPendingApproval

	s.commit(
		bus.Event{Entity: bus.EntityPendingUpdate, Action: bus.ActionCreated, ID: entry.ID},
		bus.Event{Entity: bus.EntityProfile, Action: bus.ActionUpdated, ID: employeeID},
	)

	out := entry.Clone()
	return &out, nil
}

// ApproveProfileUpdate merges the requested changes into the profile,
// resets it to APPROVED and consumes the entry.
func (s *Store) ApproveProfileUpdate(updateID string) (*models.EmployeeProfile, error) {
	return s.resolveProfileUpdate(updateID, true)
}

// RejectProfileUpdate discards the requested changes, resets the profile
// to APPROVED and consumes the entry.
func (s *Store) RejectProfileUpdate(updateID string) (*models.EmployeeProfile, error) {
	return s.resolveProfileUpdate(updateID, false)
}

func (s *Store) resolveProfileUpdate(updateID string, apply bool) (*models.EmployeeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.pendingUpdateIndex(updateID)
	if e < 0 {
		return nil, fmt.Errorf("profile update %s: %w", updateID, apperrors.ErrNotFound)
	}
	entry := s.pendingUpdates[e]
	s.pendingUpdates = append(s.pendingUpdates[:e], s.pendingUpdates[e+1:]...)

	events := []bus.Event{{Entity: bus.EntityPendingUpdate, Action: bus.ActionDeleted, ID: updateID}}

	i := s.profileIndex(entry.EmployeeID)
	if i < 0 {
		// Profile vanished while the entry was pending; drop the orphan.
		s.commit(events...)
		return nil, fmt.Errorf("profile %s: %w", entry.EmployeeID, apperrors.ErrNotFound)
	}

	if apply {
		entry.Changes.Apply(&s.profiles[i])
	}
	s.profiles[i].Status = models.ProfileStatusApproved
	events = append(events, bus.Event{Entity: bus.EntityProfile, Action: bus.ActionUpdated, ID: entry.EmployeeID})

	s.commit(events...)

	profile := s.profiles[i].Clone()
	return &profile, nil
}

// SignupClient registers a CLIENT user from the public signup form.
func (s *Store) SignupClient(name, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(email) {
		return nil, fmt.Errorf("email %s: %w", email, apperrors.ErrDuplicateEmail)
	}

	user := models.User{
		ID:        utils.NewID(),
		Email:     email,
		Name:      name,
		Role:      models.RoleClient,
		CreatedAt: now(),
	}
	s.users = append(s.users, user)
	s.commit(bus.Event{Entity: bus.EntityUser, Action: bus.ActionCreated, ID: user.ID})

	out := user
	return &out, nil
}
