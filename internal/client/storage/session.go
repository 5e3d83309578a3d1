package storage

import (
	"context"
	"errors"

	"github.com/avolkov/storefront/pkg/api"
)

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session blob exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

// SessionData is the persisted session blob: the last-known user profile and
// token, written after sign-in/sign-out and read once at startup. Readers
// must tolerate any previously written value, including none or garbage.
type SessionData struct {
	User  *api.UserProfile `json:"user"`
	Token string           `json:"token"`
}

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for persisting the client session
type SessionStorage interface {
	// SaveSession stores the session blob, replacing any previous one
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves the stored session blob
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session blob (logout)
	DeleteSession(ctx context.Context) error
}
