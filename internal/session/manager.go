package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tealinux/teasite/internal/api"
)

// Manager ties a Store to the backend API.
type Manager struct {
	store   Store
	current *Session
}

// NewManager creates a session manager over store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Init loads the stored session, if any.
func (m *Manager) Init(ctx context.Context) error {
	s, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		m.current = nil
		return nil
	}
	if err != nil {
		return err
	}
	m.current = s
	return nil
}

// Current returns the loaded session, or nil.
func (m *Manager) Current() *Session {
	return m.current
}

// Login authenticates against the backend and persists the result.
func (m *Manager) Login(ctx context.Context, client *api.Client, email, password string) (*Session, error) {
	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s := &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.current = s
	slog.Debug("logged in", "user_id", s.User.ID)
	return s, nil
}

// Logout revokes the session on the backend and clears it locally. The
// backend call is best effort: the local session is cleared regardless.
func (m *Manager) Logout(ctx context.Context, client *api.Client) error {
	if m.current.Authenticated() {
		if err := client.WithToken(m.current.AccessToken).Logout(ctx); err != nil {
			slog.Warn("backend logout failed", "error", err)
		}
	}
	m.current = nil
	return m.store.Clear(ctx)
}

// Client returns client carrying the session's access token, or client
// itself when nobody is logged in.
func (m *Manager) Client(client *api.Client) *api.Client {
	if !m.current.Authenticated() {
		return client
	}
	return client.WithToken(m.current.AccessToken)
}

// Refresh rotates the token pair and persists it.
func (m *Manager) Refresh(ctx context.Context, client *api.Client) (*Session, error) {
	if m.current == nil || m.current.RefreshToken == "" {
		return nil, ErrNoSession
	}

	tokens, err := client.Refresh(ctx, m.current.RefreshToken)
	if err != nil {
		return nil, err
	}

	s := &Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         m.current.User,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed session: %w", err)
	}
	m.current = s
	return s, nil
}
