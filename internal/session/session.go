// Package session holds the minimal authentication state of a visitor.
package session

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/learnhub/internal/storage"
)

// Session is the persisted authentication state.
type Session struct {
	Token string
	Email string
}

// Active reports whether the session grants dashboard access.
func (s Session) Active() bool { return s.Token != "" }

// Manager reads and writes a Session through a Store.
type Manager struct {
	store storage.Store
}

// NewManager creates a Manager over the given store.
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Load returns the stored session. Missing keys yield empty fields.
func (m *Manager) Load(ctx context.Context) (Session, error) {
	token, _, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return Session{}, fmt.Errorf("loading token: %w", err)
	}
	email, _, err := m.store.Get(ctx, storage.KeyEmail)
	if err != nil {
		return Session{}, fmt.Errorf("loading email: %w", err)
	}
	return Session{Token: token, Email: email}, nil
}

// Save persists email, then token. A failed write leaves no token behind.
func (m *Manager) Save(ctx context.Context, token, email string) error {
	if err := m.store.Set(ctx, storage.KeyEmail, email); err != nil {
		return fmt.Errorf("saving email: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyToken, token); err != nil {
		m.rollback(ctx)
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (m *Manager) rollback(ctx context.Context) {
	if err := m.store.Delete(ctx, storage.KeyToken, storage.KeyEmail); err != nil {
		log.Printf("session: rolling back partial save: %v", err)
	}
}

// Clear removes the session.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.KeyToken, storage.KeyEmail); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
