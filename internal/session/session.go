// Package session implements the simulated login and identity
// verification flow. There is no real authentication: credentials are
// format-checked only, and verification always succeeds. The point is
// the state machine the UI walks through, not security.
package session

import (
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when the CPF or password fails
	// the format check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned for an unknown or revoked session token.
	ErrNotFound = errors.New("session not found")
)

// cpfPattern is the masked CPF format the login screen produces:
// 000.000.000-00.
var cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// Session is one authenticated (simulated) client session.
type Session struct {
	Token     string    `json:"token"`
	CPFMasked string    `json:"cpf"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds active sessions in memory. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Login creates a new session for a well-formed CPF and a non-empty
// password. Any well-formed pair is accepted; this is a simulation.
// The session starts unverified and must pass Verify before it can use
// the account endpoints.
func (s *Store) Login(cpf, password string) (*Session, error) {
	if !cpfPattern.MatchString(cpf) || password == "" {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     uuid.NewString(),
		CPFMasked: cpf,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	sessCopy := *sess
	return &sessCopy, nil
}

// Verify marks the session as having passed the document check. The
// simulated check always succeeds; the delay lives in the client.
func (s *Store) Verify(token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess.Verified = true

	sessCopy := *sess
	return &sessCopy, nil
}

// Get returns a copy of the session for the given token.
func (s *Store) Get(token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}

	sessCopy := *sess
	return &sessCopy, nil
}

// Revoke ends a session. Revoking an unknown token is a no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
