package services

import (
	"fmt"

	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/policy"
	"github.com/raziqtech/portal-api/internal/store"
)

// MessagingService handles the internal relays: the shared staff channel
// and the per-engineer direct-admin channels.
type MessagingService struct {
	store *store.Store
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(st *store.Store) *MessagingService {
	return &MessagingService{store: st}
}

// StaffRelay returns the shared staff channel.
func (s *MessagingService) StaffRelay(actor *models.User) ([]models.InternalMessage, error) {
	if !policy.CanUseStaffRelay(actor) {
		return nil, fmt.Errorf("the staff relay is staff-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.ListStaffRelay(), nil
}

// PostStaff appends to the shared staff channel.
func (s *MessagingService) PostStaff(actor *models.User, content string) (*models.InternalMessage, error) {
	if !policy.CanUseStaffRelay(actor) {
		return nil, fmt.Errorf("the staff relay is staff-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.AddStaffMessage(*actor, content)
}

// MarkStaffRead marks the whole staff channel read for the actor.
func (s *MessagingService) MarkStaffRead(actor *models.User) error {
	if !policy.CanUseStaffRelay(actor) {
		return fmt.Errorf("the staff relay is staff-only: %w", apperrors.ErrUnauthorized)
	}
	s.store.MarkStaffRead(actor.ID)
	return nil
}

// DirectRelay returns one engineer's direct-admin channel.
func (s *MessagingService) DirectRelay(actor *models.User, engineerID string) ([]models.InternalMessage, error) {
	if !policy.CanUseDirectRelay(actor, engineerID) {
		return nil, fmt.Errorf("direct relay %s: %w", engineerID, apperrors.ErrUnauthorized)
	}
	return s.store.ListDirectRelay(engineerID), nil
}

// PostDirect appends to one engineer's direct-admin channel.
func (s *MessagingService) PostDirect(actor *models.User, engineerID, content string) (*models.InternalMessage, error) {
	if !policy.CanUseDirectRelay(actor, engineerID) {
		return nil, fmt.Errorf("direct relay %s: %w", engineerID, apperrors.ErrUnauthorized)
	}
	return s.store.AddDirectMessage(engineerID, *actor, content)
}

// MarkDirectRead marks one engineer's direct channel read for the actor.
func (s *MessagingService) MarkDirectRead(actor *models.User, engineerID string) error {
	if !policy.CanUseDirectRelay(actor, engineerID) {
		return fmt.Errorf("direct relay %s: %w", engineerID, apperrors.ErrUnauthorized)
	}
	s.store.MarkDirectRead(engineerID, actor.ID)
	return nil
}
