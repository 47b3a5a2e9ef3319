package utils

import "github.com/google/uuid"

// NewID returns a fresh opaque entity id.
func NewID() string {
	return uuid.NewString()
}
