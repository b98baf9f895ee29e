package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard session not found")

// Session pairs a Form with the lock that serialises access to it.
type Session struct {
	ID   string
	Kind string

	mu      sync.Mutex
	form    Form
	touched time.Time
}

// Do runs fn with exclusive access to the session's form.
func (s *Session) Do(fn func(Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

// Sessions holds in-progress wizards in memory and forgets those idle
// longer than the TTL.
type Sessions struct {
	ttl time.Duration
	now func() time.Time

	mu sync.Mutex
	m  map[string]*Session
}

// NewSessions keeps sessions until they sit idle longer than ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, now: time.Now, m: make(map[string]*Session)}
}

// WithClock replaces the time source; tests use it to expire sessions.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	s.now = now
	return s
}

// Create stores f under a fresh id.
func (s *Sessions) Create(kind string, f Form) *Session {
	sess := &Session{ID: uuid.NewString(), Kind: kind, form: f, touched: s.now()}
	s.mu.Lock()
	s.m[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and marks it as used.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(sess.touched) > s.ttl {
		delete(s.m, id)
		return nil, ErrSessionNotFound
	}
	sess.touched = now
	return sess, nil
}

// Delete forgets a session.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// Len is the number of stored sessions, expired or not.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Sweep removes idle sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.m {
		if now.Sub(sess.touched) > s.ttl {
			delete(s.m, id)
			n++
		}
	}
	return n
}
