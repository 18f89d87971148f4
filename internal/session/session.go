// Package session issues and resolves opaque bearer tokens for
// authenticated dashboard sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/models"
)

type entry struct {
	session  models.Session
	lastSeen time.Time
}

// Manager keeps active sessions in memory. Sessions expire after the idle
// TTL; there is no persistence across restarts.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewManager creates a session manager with the given idle TTL.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Issue creates a new token for the given session.
func (m *Manager) Issue(s models.Session) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.entries[token] = entry{session: s, lastSeen: m.now()}
	m.mu.Unlock()
	return token
}

// Resolve returns the session for a token, refreshing its idle timer.
// Expired and unknown tokens return false.
func (m *Manager) Resolve(token string) (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return models.Session{}, false
	}
	if m.now().Sub(e.lastSeen) > m.ttl {
		delete(m.entries, token)
		return models.Session{}, false
	}
	e.lastSeen = m.now()
	m.entries[token] = e
	return e.session, true
}

// Revoke drops the token, if present.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
}
