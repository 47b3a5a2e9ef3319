package services

import (
	"fmt"

	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/policy"
	"github.com/raziqtech/portal-api/internal/store"
)

// InquiryService handles contact-form submissions and their follow-up.
type InquiryService struct {
	store *store.Store
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(st *store.Store) *InquiryService {
	return &InquiryService{store: st}
}

// Submit records a contact-form submission. The public form needs no
// authentication; a logged-in client gets linked by id so their dashboard
// finds the inquiry even if they typed a different email.
func (s *InquiryService) Submit(actor *models.User, in store.NewInquiryInput) (*models.Inquiry, error) {
	if actor != nil && actor.Role == models.RoleClient {
		in.ClientID = actor.ID
	}
	return s.store.AddInquiry(in)
}

// List returns the inquiries the actor may see: all of them for staff,
// their own for a client.
func (s *InquiryService) List(actor *models.User) ([]models.Inquiry, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	out := []models.Inquiry{}
	for _, q := range s.store.ListInquiries() {
		if policy.CanViewInquiry(actor, q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// UpdateStatus sets an inquiry's status. Staff only.
func (s *InquiryService) UpdateStatus(actor *models.User, id string, status models.InquiryStatus) (*models.Inquiry, error) {
	if !policy.CanUpdateInquiry(actor) {
		return nil, fmt.Errorf("inquiry status changes are staff-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.UpdateInquiryStatus(id, status)
}

// Reply appends to an inquiry's thread and marks it Replied. Staff only.
func (s *InquiryService) Reply(actor *models.User, id, content string) (*models.Inquiry, error) {
	if !policy.CanUpdateInquiry(actor) {
		return nil, fmt.Errorf("inquiry replies are staff-only: %w", apperrors.ErrUnauthorized)
	}
	return s.store.AddInquiryReply(id, *actor, content)
}
