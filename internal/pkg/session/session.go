// Package session tracks issued login sessions so a token can be revoked
// before it expires.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 30 * 24 * time.Hour

// Session is one login.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store keeps live sessions in process memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Session), now: time.Now}
}

// Issue records a new session for userID.
func (s *Store) Issue(userID string, ttl time.Duration) Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(userID),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// IsActive reports whether sessionID was issued to userID and is neither
// revoked nor expired.
func (s *Store) IsActive(userID, sessionID string) bool {
	s.mu.RLock()
	sess, ok := s.sessions[strings.TrimSpace(sessionID)]
	s.mu.RUnlock()
	return ok && sess.UserID == userID && s.now().Before(sess.ExpiresAt)
}

// Live reports whether sessionID exists and has not expired.
func (s *Store) Live(sessionID string) bool {
	s.mu.RLock()
	sess, ok := s.sessions[strings.TrimSpace(sessionID)]
	s.mu.RUnlock()
	return ok && s.now().Before(sess.ExpiresAt)
}

// Revoke drops sessionID. Unknown ids are ignored.
func (s *Store) Revoke(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, strings.TrimSpace(sessionID))
	s.mu.Unlock()
}

// Prune removes expired sessions and returns how many were dropped.
func (s *Store) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
