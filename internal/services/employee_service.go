package services

import (
	"fmt"

	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/policy"
	"github.com/raziqtech/portal-api/internal/store"
)

// EmployeeService handles employee provisioning, the profile approval
// workflow and profile reads.
type EmployeeService struct {
	store *store.Store
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(st *store.Store) *EmployeeService {
	return &EmployeeService{store: st}
}

// ListProfiles returns the profiles the actor may see: everything for the
// admin, approved profiles plus their own for everyone else.
func (s *EmployeeService) ListProfiles(actor *models.User) []models.EmployeeProfile {
	out := []models.EmployeeProfile{}
	for _, p := range s.store.ListProfiles() {
		if policy.CanViewProfile(actor, p) {
			out = append(out, p)
		}
	}
	return out
}

// TeamProfiles returns the approved profiles shown on the public team page.
func (s *EmployeeService) TeamProfiles() []models.EmployeeProfile {
	return s.ListProfiles(nil)
}

// OwnProfile returns the profile backing the acting employee.
func (s *EmployeeService) OwnProfile(actor *models.User) (*models.EmployeeProfile, error) {
	if actor == nil || actor.Role != models.RoleEmployee {
		return nil, fmt.Errorf("only employees have a profile: %w", apperrors.ErrUnauthorized)
	}
	return s.store.GetProfileByUserID(actor.ID)
}

// AddEmployee provisions a new employee. Admin only.
func (s *EmployeeService) AddEmployee(actor *models.User, userIn store.NewUserInput, profileIn store.NewProfileInput) (*models.User, *models.EmployeeProfile, error) {
	if !policy.CanManageEmployees(actor) {
		return nil, nil, fmt.Errorf("employee provisioning is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.AddEmployee(userIn, profileIn)
}

// UpdateEmployee applies changes immediately, bypassing the approval
// workflow. Admin only.
func (s *EmployeeService) UpdateEmployee(actor *models.User, profileID string, profileChanges models.ProfileChanges, userChanges models.UserChanges) (*models.EmployeeProfile, error) {
	if !policy.CanManageEmployees(actor) {
		return nil, fmt.Errorf("direct profile edits are admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.UpdateEmployee(profileID, profileChanges, userChanges)
}

// DeleteEmployee removes the profile and its linked user. Admin only.
func (s *EmployeeService) DeleteEmployee(actor *models.User, profileID string) error {
	if !policy.CanManageEmployees(actor) {
		return fmt.Errorf("employee deletion is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.DeleteEmployee(profileID)
}

// RequestProfileUpdate files the acting employee's pending edit for their
// own profile.
func (s *EmployeeService) RequestProfileUpdate(actor *models.User, changes models.ProfileChanges) (*models.ProfileUpdateEntry, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	profile, err := s.store.GetProfileByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanRequestProfileUpdate(actor, *profile) {
		return nil, fmt.Errorf("profile edits go through the update request: %w", apperrors.ErrUnauthorized)
	}
	return s.store.RequestProfileUpdate(profile.ID, changes)
}

// ListPendingUpdates returns the approval queue. Admin only.
func (s *EmployeeService) ListPendingUpdates(actor *models.User) ([]models.ProfileUpdateEntry, error) {
	if !policy.CanManageEmployees(actor) {
		return nil, fmt.Errorf("the approval queue is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.ListPendingUpdates(), nil
}

// ApproveProfileUpdate merges a pending edit into its profile. Admin only.
func (s *EmployeeService) ApproveProfileUpdate(actor *models.User, updateID string) (*models.EmployeeProfile, error) {
	if !policy.CanManageEmployees(actor) {
		return nil, fmt.Errorf("approval is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.ApproveProfileUpdate(updateID)
}

// RejectProfileUpdate discards a pending edit. Admin only.
func (s *EmployeeService) RejectProfileUpdate(actor *models.User, updateID string) (*models.EmployeeProfile, error) {
	if !policy.CanManageEmployees(actor) {
		return nil, fmt.Errorf("rejection is admin-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.RejectProfileUpdate(updateID)
}
