package store

import (
	"fmt"

	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/utils"
)

// AddStaffMessage appends to the shared staff relay. The sender has read
// their own message by definition.
func (s *Store) AddStaffMessage(sender models.User, content string) (*models.InternalMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := newInternalMessage(sender, content)
	s.staffRelay = append(s.staffRelay, message)
	s.commit(bus.Event{Entity: bus.EntityStaffRelay, Action: bus.ActionCreated, ID: message.ID})

	out := message.Clone()
	return &out, nil
}

// AddDirectMessage appends to one engineer's direct-admin relay. The relay
// key must reference an existing EMPLOYEE user.
func (s *Store) AddDirectMessage(engineerID string, sender models.User, content string) (*models.InternalMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engineerExists(engineerID) {
		return nil, fmt.Errorf("engineer %s: %w", engineerID, apperrors.ErrNotFound)
	}

	message := newInternalMessage(sender, content)
	s.directRelays[engineerID] = append(s.directRelays[engineerID], message)
	s.commit(bus.Event{Entity: bus.EntityDirectRelay, Action: bus.ActionCreated, ID: message.ID})

	out := message.Clone()
	return &out, nil
}

// MarkStaffRead marks every staff-relay message as read by the user.
// Idempotent: marking twice changes nothing.
func (s *Store) MarkStaffRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if markRelayRead(s.staffRelay, userID) {
		s.commit(bus.Event{Entity: bus.EntityStaffRelay, Action: bus.ActionUpdated, ID: userID})
	}
}

// MarkDirectRead marks every message in one engineer's direct relay as read
// by the user. Idempotent.
func (s *Store) MarkDirectRead(engineerID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if markRelayRead(s.directRelays[engineerID], userID) {
		s.commit(bus.Event{Entity: bus.EntityDirectRelay, Action: bus.ActionUpdated, ID: engineerID})
	}
}

func (s *Store) engineerExists(engineerID string) bool {
	i := s.userIndex(engineerID)
	return i >= 0 && s.users[i].Role == models.RoleEmployee
}

func newInternalMessage(sender models.User, content string) models.InternalMessage {
	return models.InternalMessage{
		ID:         utils.NewID(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Content:    content,
		Timestamp:  now(),
		ReadBy:     []string{sender.ID},
	}
}

func markRelayRead(relay []models.InternalMessage, userID string) bool {
	changed := false
	for i := range relay {
		if !relay[i].ReadByUser(userID) {
			relay[i].ReadBy = append(relay[i].ReadBy, userID)
			changed = true
		}
	}
	return changed
}
