package services

import (
	"fmt"
	"strings"

	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/store"
)

// AuthService handles identity resolution and client signup.
//
// There are no credentials: login resolves an existing user by email and
// the session carries the resulting id. Real authentication is explicitly
// out of scope for this system.
type AuthService struct {
	store *store.Store
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

// Login resolves the user for an email, or ErrNotFound when no account
// matches. The caller surfaces that as a login failure.
func (s *AuthService) Login(email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperrors.ErrNotFound)
	}
	return s.store.FindUserByEmail(email)
}

// SignupClient registers a CLIENT account from the public signup form.
func (s *AuthService) SignupClient(name, email string) (*models.User, error) {
	return s.store.SignupClient(strings.TrimSpace(name), strings.TrimSpace(email))
}

// GetUser retrieves a user by id, used to rehydrate the session identity.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.store.GetUser(id)
}
