package services

import (
	"context"
	"log"
	"sync"
	"time"

	"alfredoptarigan/ai-interviewer/internal/models"
)

// SessionStore is the process-wide mapping from session identifier to
// interview state. At most one live session exists per identifier. History
// lives for the process lifetime only; a restart drops every session.
type SessionStore interface {
	Create(session *models.Session) error
	Get(sessionID string) (*models.Session, error)
	RecordExchange(sessionID string, outgoing, reply models.Turn) error
	// Delete is strict: removing an unknown session returns ErrSessionNotFound.
	Delete(sessionID string) error
	StartJanitor(ctx context.Context, interval time.Duration)
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &sessionStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
	}
}

// Create implements SessionStore.
func (s *sessionStore) Create(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return ErrDuplicateSession
	}
	s.sessions[session.ID] = session
	return nil
}

// Get implements SessionStore.
func (s *sessionStore) Get(sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RecordExchange implements SessionStore.
func (s *sessionStore) RecordExchange(sessionID string, outgoing, reply models.Turn) error {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	session.Lock()
	defer session.Unlock()
	if session.Closed() {
		return ErrSessionNotFound
	}
	session.Append(outgoing, reply)
	return nil
}

// Delete implements SessionStore.
func (s *sessionStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	delete(s.sessions, sessionID)
	return nil
}

// StartJanitor sweeps sessions idle past the store TTL. Abandoned interviews
// would otherwise accumulate until process exit.
func (s *sessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.reap(time.Now().UTC())
			}
		}
	}()
}

func (s *sessionStore) reap(now time.Time) {
	s.mu.RLock()
	candidates := make([]*models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		candidates = append(candidates, session)
	}
	s.mu.RUnlock()

	// Lock order is always session first, then store, matching the
	// orchestrator's finish path.
	for _, session := range candidates {
		session.Lock()
		idle := session.IdleSince(now)
		if !session.Closed() && idle >= s.ttl {
			session.Close()
			s.mu.Lock()
			delete(s.sessions, session.ID)
			s.mu.Unlock()
			log.Printf("🧹 Reaped idle session %s (idle %s)\n", session.ID, idle.Round(time.Second))
		}
		session.Unlock()
	}
}
