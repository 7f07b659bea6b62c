package wizard

import (
	"sync"
	"time"

	"parkcareers/internal/common"
)

// Store holds live wizard sessions in memory. Sessions are never persisted:
// they die with their TTL or an explicit close. Expired entries are swept
// lazily on access. The live *Session never leaves the lock: reads hand out
// deep copies and writes go through Mutate.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[common.UUID]*storeEntry
}

type storeEntry struct {
	session   *Session
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, sessions: make(map[common.UUID]*storeEntry)}
}

func (s *Store) Create(jobID string) *Session {
	session := NewSession(jobID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[session.ID] = &storeEntry{session: session, expiresAt: time.Now().Add(s.ttl)}
	return session.Clone()
}

// Get returns a detached snapshot of the session.
func (s *Store) Get(id common.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, common.NewError(common.CodeNotFound, "wizard session not found", nil)
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.session.Clone(), nil
}

func (s *Store) Delete(id common.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Mutate runs fn against the live session under the store lock so no two
// state-mutating operations overlap for one wizard instance. The pointer
// passed to fn must not escape fn; take a Clone for anything kept.
func (s *Store) Mutate(id common.UUID, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return common.NewError(common.CodeNotFound, "wizard session not found", nil)
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return fn(entry.session)
}

func (s *Store) sweepLocked() {
	now := time.Now()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
