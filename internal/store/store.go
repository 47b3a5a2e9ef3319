// Package store is the single authority over every entity collection.
// All reads and writes in the application go through it: mutations are
// atomic under one lock, publish a change event, and persist the aggregate
// snapshot before returning.
package store

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/persistence"
)

// Store holds every collection behind one mutex. Construct exactly one per
// process with New and inject it; there is no package-level instance.
type Store struct {
	mu        sync.RWMutex
	bus       *bus.Bus
	persister persistence.Snapshotter

	users          []models.User
	profiles       []models.EmployeeProfile
	pendingUpdates []models.ProfileUpdateEntry
	projects       []models.Project
	inquiries      []models.Inquiry
	staffRelay     []models.InternalMessage
	directRelays   map[string][]models.InternalMessage
}

// New builds a store wired to the given bus and persistence backend and
// loads the persisted snapshot when one exists.
func New(b *bus.Bus, p persistence.Snapshotter) (*Store, error) {
	s := &Store{
		bus:          b,
		persister:    p,
		directRelays: make(map[string][]models.InternalMessage),
	}

	snapshot, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snapshot != nil {
		s.restore(*snapshot)
	}
	return s, nil
}

func (s *Store) restore(snapshot models.Snapshot) {
	clone := snapshot.Clone()
	s.users = clone.Users
	s.profiles = clone.Profiles
	s.pendingUpdates = clone.PendingUpdates
	s.projects = clone.Projects
	s.inquiries = clone.Inquiries
	s.staffRelay = clone.StaffRelay
	s.directRelays = clone.DirectAdminRelays
	if s.directRelays == nil {
		s.directRelays = make(map[string][]models.InternalMessage)
	}
}

// commit persists the aggregate and broadcasts the change events. Called
// with the write lock held, once per mutation. A persistence failure is
// logged, not surfaced: the in-memory mutation already happened and open
// views still need the broadcast.
func (s *Store) commit(events ...bus.Event) {
	if err := s.persister.Save(s.snapshotLocked()); err != nil {
		log.Printf("store: failed to persist snapshot: %v", err)
	}
	for _, e := range events {
		s.bus.Publish(e)
	}
}

func (s *Store) snapshotLocked() *models.Snapshot {
	snapshot := models.Snapshot{
		Users:             s.users,
		Profiles:          s.profiles,
		PendingUpdates:    s.pendingUpdates,
		Projects:          s.projects,
		Inquiries:         s.inquiries,
		StaffRelay:        s.staffRelay,
		DirectAdminRelays: s.directRelays,
	}.Clone()
	return &snapshot
}

// Snapshot returns a deep copy of the full aggregate.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Empty reports whether the store holds no users at all, i.e. neither a
// persisted snapshot nor seed data has been applied.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) == 0
}

// Read operations. Every result is a defensive copy: later mutations never
// reach into a previously returned value.

func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...)
}

func (s *Store) ListProfiles() []models.EmployeeProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EmployeeProfile, len(s.profiles))
	for i, p := range s.profiles {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) ListProjects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) ListInquiries() []models.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Inquiry, len(s.inquiries))
	for i, q := range s.inquiries {
		out[i] = q.Clone()
	}
	return out
}

func (s *Store) ListPendingUpdates() []models.ProfileUpdateEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProfileUpdateEntry, len(s.pendingUpdates))
	for i, e := range s.pendingUpdates {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) ListStaffRelay() []models.InternalMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRelay(s.staffRelay)
}

func (s *Store) ListDirectRelay(engineerID string) []models.InternalMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRelay(s.directRelays[engineerID])
}

func cloneRelay(relay []models.InternalMessage) []models.InternalMessage {
	out := make([]models.InternalMessage, len(relay))
	for i, m := range relay {
		out[i] = m.Clone()
	}
	return out
}

// Point reads.

func (s *Store) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.userIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	user := s.users[i]
	return &user, nil
}

// FindUserByEmail resolves a user for login. Matching is case-insensitive.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
}

func (s *Store) GetProfile(id string) (*models.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.profileIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
	}
	profile := s.profiles[i].Clone()
	return &profile, nil
}

func (s *Store) GetProfileByUserID(userID string) (*models.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			profile := p.Clone()
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("profile for user %s: %w", userID, apperrors.ErrNotFound)
}

func (s *Store) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.projectIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	project := s.projects[i].Clone()
	return &project, nil
}

func (s *Store) GetInquiry(id string) (*models.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.inquiryIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("inquiry %s: %w", id, apperrors.ErrNotFound)
	}
	inquiry := s.inquiries[i].Clone()
	return &inquiry, nil
}

func (s *Store) GetPendingUpdate(id string) (*models.ProfileUpdateEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.pendingUpdateIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("profile update %s: %w", id, apperrors.ErrNotFound)
	}
	entry := s.pendingUpdates[i].Clone()
	return &entry, nil
}

// Index helpers, callers hold the lock.

func (s *Store) userIndex(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) profileIndex(id string) int {
	for i, p := range s.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) projectIndex(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) inquiryIndex(id string) int {
	for i, q := range s.inquiries {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) pendingUpdateIndex(id string) int {
	for i, e := range s.pendingUpdates {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emailTaken(email string) bool {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func now() time.Time {
	return time.Now().UTC()
}
