package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore is the fallback used when Redis is not configured.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
}

type memorySession struct {
	formToken      string
	tokenIssuedAt  time.Time
	lastSubmission time.Time
	hasSubmission  bool
	expiresAt      time.Time
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{sessions: make(map[string]*memorySession)}
	go s.cleanupLoop()
	return s
}

// cleanupLoop periodically drops expired sessions.
func (s *memoryStore) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, sess := range s.sessions {
			if now.After(sess.expiresAt) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// get returns the live session for id, creating it when absent or expired.
// Caller must hold s.mu.
func (s *memoryStore) get(sessionID string) *memorySession {
	now := time.Now()
	sess, ok := s.sessions[sessionID]
	if !ok || now.After(sess.expiresAt) {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.expiresAt = now.Add(sessionTTL)
	return sess
}

// live returns the session for id only while it is unexpired, dropping a
// stale one the cleanup loop has not swept yet. Caller must hold s.mu.
func (s *memoryStore) live(sessionID string) (*memorySession, bool) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, false
	}
	return sess, true
}

func (s *memoryStore) IssueFormToken(_ context.Context, sessionID string) (string, error) {
	token, err := newFormToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.formToken = token
	sess.tokenIssuedAt = time.Now()
	return token, nil
}

func (s *memoryStore) FormToken(_ context.Context, sessionID string) (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sessionID)
	if !ok || sess.formToken == "" {
		return "", time.Time{}, ErrNoToken
	}
	return sess.formToken, sess.tokenIssuedAt, nil
}

func (s *memoryStore) ClearFormToken(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live(sessionID); ok {
		sess.formToken = ""
		sess.tokenIssuedAt = time.Time{}
	}
	return nil
}

func (s *memoryStore) LastSubmission(_ context.Context, sessionID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sessionID)
	if !ok || !sess.hasSubmission {
		return time.Time{}, false, nil
	}
	return sess.lastSubmission, true, nil
}

func (s *memoryStore) SetLastSubmission(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.lastSubmission = at
	sess.hasSubmission = true
	return nil
}
