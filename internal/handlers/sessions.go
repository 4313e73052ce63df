// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pagecomposer/internal/compose"
)

// DefaultSessionIdle is how long an untouched editor session is kept.
const DefaultSessionIdle = 2 * time.Hour

// editor is one registered session. Its mutex serializes every operation
// on the session, the way a single editor window would.
type editor struct {
	mu       sync.Mutex
	session  *compose.Session
	lastUsed time.Time
}

// Sessions holds the live editor sessions by id. It is safe for concurrent
// use; each session is guarded by its own lock.
type Sessions struct {
	mu      sync.RWMutex
	editors map[string]*editor
	idle    time.Duration
	now     func() time.Time
}

// NewSessions creates an empty registry. Sessions idle for longer than
// idle are dropped by Prune; zero means DefaultSessionIdle.
func NewSessions(idle time.Duration) *Sessions {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &Sessions{
		editors: make(map[string]*editor),
		idle:    idle,
		now:     time.Now,
	}
}

// Add registers a session and returns its id.
func (s *Sessions) Add(sess *compose.Session) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.editors[id] = &editor{session: sess, lastUsed: s.now()}
	s.mu.Unlock()
	return id
}

// With runs fn with exclusive access to the session. It reports false
// when no session has that id.
func (s *Sessions) With(id string, fn func(*compose.Session)) bool {
	s.mu.RLock()
	e, ok := s.editors[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = s.now()
	fn(e.session)
	return true
}

// Remove drops a session. It reports whether one was registered.
func (s *Sessions) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.editors[id]
	delete(s.editors, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editors)
}

// Prune drops sessions idle for longer than the registry's idle limit
// and returns how many were removed. Sessions in use are skipped.
func (s *Sessions) Prune() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.editors {
		if !e.mu.TryLock() {
			continue
		}
		stale := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(s.editors, id)
			removed++
		}
	}
	return removed
}
