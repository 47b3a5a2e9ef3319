package store

import (
	"fmt"

	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/utils"
)

// NewInquiryInput holds the contact-form fields. ClientID is set when the
// submitter was a logged-in client.
type NewInquiryInput struct {
	ClientID    string
	Name        string
	Email       string
	ProjectType string
	Budget      string
	Message     string
}

// AddInquiry records a contact-form submission. New inquiries go to the
// front of the list so dashboards show the latest first.
func (s *Store) AddInquiry(in NewInquiryInput) (*models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry := models.Inquiry{
		ID:          utils.NewID(),
		ClientID:    in.ClientID,
		Name:        in.Name,
		Email:       in.Email,
		ProjectType: in.ProjectType,
		Budget:      in.Budget,
		Message:     in.Message,
		Status:      models.InquiryStatusNew,
		CreatedAt:   now(),
		Thread:      []models.InquiryMessage{},
	}
	s.inquiries = append([]models.Inquiry{inquiry}, s.inquiries...)
	s.commit(bus.Event{Entity: bus.EntityInquiry, Action: bus.ActionCreated, ID: inquiry.ID})

	out := inquiry.Clone()
	return &out, nil
}

// UpdateInquiryStatus sets the status directly.
func (s *Store) UpdateInquiryStatus(id string, status models.InquiryStatus) (*models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.inquiryIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("inquiry %s: %w", id, apperrors.ErrNotFound)
	}

	s.inquiries[i].Status = status
	s.commit(bus.Event{Entity: bus.EntityInquiry, Action: bus.ActionUpdated, ID: id})

	out := s.inquiries[i].Clone()
	return &out, nil
}

// AddInquiryReply appends to the inquiry thread and forces the status to
// Replied.
func (s *Store) AddInquiryReply(id string, sender models.User, content string) (*models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.inquiryIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("inquiry %s: %w", id, apperrors.ErrNotFound)
	}

	message := models.InquiryMessage{
		ID:         utils.NewID(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Content:    content,
		CreatedAt:  now(),
	}
	s.inquiries[i].Thread = append(s.inquiries[i].Thread, message)
	s.inquiries[i].Status = models.InquiryStatusReplied

	s.commit(bus.Event{Entity: bus.EntityInquiry, Action: bus.ActionUpdated, ID: id})

	out := s.inquiries[i].Clone()
	return &out, nil
}
