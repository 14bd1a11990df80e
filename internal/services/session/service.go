// Package session issues and resolves the opaque tokens that carry a
// validated display name across reconnects, so identity is not
// re-validated on every message.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/clock"
	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// ErrInvalidSession is returned for unknown or expired tokens
var ErrInvalidSession = errors.New("invalid or expired session")

// Session associates a token with a validated display name
type Session struct {
	Token     string
	Name      model.PlayerName
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the session service
type Config struct {
	Duration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Duration: 24 * time.Hour,
	}
}

// Service tracks live sessions in memory. Sessions are an identity
// cache, not persisted state: a process restart simply requires the
// client to re-join under its name.
type Service struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	duration time.Duration
}

// New creates a new session Service
func New(clock clock.Clock, cfg Config) *Service {
	if cfg.Duration == 0 {
		cfg.Duration = DefaultConfig().Duration
	}
	return &Service{
		clock:    clock,
		sessions: make(map[string]*Session),
		duration: cfg.Duration,
	}
}

// Issue creates a session for an already-validated display name
func (s *Service) Issue(name model.PlayerName) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     generateToken(),
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.duration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// Resolve returns the session for a token, or ErrInvalidSession
func (s *Service) Resolve(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Invalidate removes a session
func (s *Service) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpired removes expired sessions (call periodically)
func (s *Service) CleanExpired() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateToken generates a random opaque token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
