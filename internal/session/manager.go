package session

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns the live sessions of a process.
type Manager struct {
	opts   Options
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager whose sessions are built with opts.
func NewManager(opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Manager{
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := New(m.opts)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.logger.Info("session created", "session", s.ID)
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session deleted", "session", id)
	return nil
}

// List returns the IDs of all sessions, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
