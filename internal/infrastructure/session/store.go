package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// storeEntry pairs a session with its sliding expiration
type storeEntry struct {
	session    *Session
	expiration time.Time
}

// Store is a thread-safe in-memory session store with TTL support. Each
// browsing session owns its own cart, transcript, and match set; there is
// no shared state between sessions.
type Store struct {
	data  map[string]*storeEntry
	ttl   time.Duration
	mutex sync.RWMutex
}

// NewStore creates a session store with the given sliding TTL.
func NewStore(ttl time.Duration) *Store {
	store := &Store{
		data: make(map[string]*storeEntry),
		ttl:  ttl,
	}

	// Start cleanup goroutine to remove expired sessions every 10 minutes
	go store.cleanupExpired()

	return store
}

// GetOrCreate returns the live session for id, refreshing its TTL. When id
// is empty, unknown, or expired, a fresh session is created under a new
// uuid. It reports whether a new session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		s.mutex.Lock()
		entry, exists := s.data[id]
		if exists && time.Now().Before(entry.expiration) {
			entry.expiration = time.Now().Add(s.ttl)
			s.mutex.Unlock()
			return entry.session, false
		}
		s.mutex.Unlock()
	}

	sess := New(uuid.NewString())

	s.mutex.Lock()
	s.data[sess.ID] = &storeEntry{
		session:    sess,
		expiration: time.Now().Add(s.ttl),
	}
	s.mutex.Unlock()

	return sess, true
}

// Get returns the live session for id without creating one.
func (s *Store) Get(id string) (*Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.data[id]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.session, true
}

// Delete removes a session from the store.
func (s *Store) Delete(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data, id)
}

// Size returns the current number of stored sessions (for debugging/monitoring)
func (s *Store) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// cleanupExpired removes expired sessions periodically
func (s *Store) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for id, entry := range s.data {
			if now.After(entry.expiration) {
				delete(s.data, id)
			}
		}
		s.mutex.Unlock()
	}
}
