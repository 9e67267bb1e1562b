// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/i18ngen/internal/form"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// =============================================================================
// SESSION
// =============================================================================

// Session is one editing session: a form store plus activity tracking.
type Session struct {
	id        string
	store     *form.Store
	startTime time.Time

	mu           sync.Mutex
	lastActivity time.Time
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Store returns the session's form store.
func (s *Session) Store() *form.Store {
	return s.store
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// LastActivity returns the time of the last recorded activity.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActivity = now
	s.mu.Unlock()
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the sessions of a server. Sessions idle for longer than the
// timeout are dropped by Sweep and are no longer returned by Get.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	timeout     time.Duration
	initialRows int

	// now is replaced in tests
	now func() time.Time
}

// Config holds configuration for the session manager.
type Config struct {
	// Timeout is how long a session may sit idle (default: 1 hour).
	// Zero disables expiry.
	Timeout time.Duration

	// InitialRows is the number of blank rows a new session starts with.
	InitialRows int
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:     time.Hour,
		InitialRows: 1,
	}
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		timeout:     cfg.Timeout,
		initialRows: cfg.InitialRows,
		now:         time.Now,
	}
}

// Create starts a new session with a fresh form.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		id:           generateSessionID(),
		store:        form.NewStore(m.initialRows),
		startTime:    now,
		lastActivity: now,
	}
	m.sessions[s.id] = s
	log.Printf("SESSION_CREATED | id=%s active=%d", s.id, len(m.sessions))
	return s
}

// Get returns the live session with the given ID and records activity on
// it. Unknown and expired IDs return ErrSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := m.now()
	if m.expired(s, now) {
		m.expireLocked(s, now)
		return nil, ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired. created reports which.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, err := m.Get(id); err == nil {
			return s, false
		}
	}
	return m.Create(), true
}

// Delete ends a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of tracked sessions, including expired ones not
// yet swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// SetTimeout updates the idle timeout.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

// SetInitialRows updates the row count used for new sessions.
func (m *Manager) SetInitialRows(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialRows = n
}

// Sweep drops every expired session and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for _, s := range m.sessions {
		if m.expired(s, now) {
			m.expireLocked(s, now)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.timeout > 0 && now.Sub(s.LastActivity()) >= m.timeout
}

func (m *Manager) expireLocked(s *Session, now time.Time) {
	delete(m.sessions, s.id)
	log.Printf("SESSION_EXPIRED | id=%s idle=%s", s.id, FormatDuration(now.Sub(s.LastActivity())))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + uuid.NewString()
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
