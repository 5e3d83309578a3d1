// Package session holds the client's process-wide authentication state: the
// last-known user profile and token. It is populated once at startup from
// persisted storage and read by the transport on every outgoing request.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/avolkov/storefront/internal/client/storage"
	"github.com/avolkov/storefront/pkg/api"
)

// ErrNotBootstrapped is returned when the session is read before Bootstrap
// has run. Proceeding with an uninitialized session would silently downgrade
// every subsequent request to anonymous, so the failure is explicit.
var ErrNotBootstrapped = errors.New("session not bootstrapped")

// Session is the client-held authentication state
type Session struct {
	User  *api.UserProfile
	Token string
}

// Anonymous is the default state: no user, empty token
func Anonymous() Session {
	return Session{User: nil, Token: ""}
}

// Manager owns the single process-wide Session. Reads and writes are
// mutex-protected; the transport reads the token fresh per request rather
// than holding a shared mutable default.
type Manager struct {
	store        storage.SessionStorage
	logger       *slog.Logger
	mu           sync.RWMutex
	current      Session
	bootstrapped bool
	bootstrapOne sync.Once
}

// NewManager creates a session manager starting from the anonymous session
func NewManager(store storage.SessionStorage, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		current: Anonymous(),
	}
}

// Bootstrap loads the persisted session blob into the manager. It runs the
// read at most once per process; repeated calls are no-ops. Any failure
// (no blob, malformed blob, storage unavailable) is logged and the state is
// left anonymous: the bootstrap fails open and never blocks startup.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.bootstrapOne.Do(func() {
		data, err := m.store.GetSession(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()

		if err != nil {
			if !errors.Is(err, storage.ErrSessionNotFound) {
				m.logger.Warn("failed to load persisted session, starting anonymous", "error", err)
			}
		} else {
			m.current = Session{User: data.User, Token: data.Token}
		}

		m.bootstrapped = true
	})
}

// Current returns the session. Before Bootstrap it returns
// ErrNotBootstrapped instead of silently handing out the anonymous default.
func (m *Manager) Current() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.bootstrapped {
		return Session{}, ErrNotBootstrapped
	}

	return m.current, nil
}

// Set overwrites the session wholesale and persists it. No validation is
// performed: correctness of the written value is the writer's
// responsibility.
func (m *Manager) Set(ctx context.Context, sess Session) error {
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	if err := m.store.SaveSession(ctx, &storage.SessionData{User: sess.User, Token: sess.Token}); err != nil {
		return err
	}

	return nil
}

// Clear resets the session to anonymous and removes the persisted blob
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = Anonymous()
	m.mu.Unlock()

	err := m.store.DeleteSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return err
	}

	return nil
}

// Token returns the token current at the moment of the call. Used by the
// transport to compute the auth header per request; an empty string means
// the request goes out anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}
