package session

import "sync"

// Store is the in-process session registry. It owns two mappings:
// session ID to session, and user ID to current session ID. All access
// goes through the mutex so individual operations are atomic, but
// sequences of operations are not; the service layer decides how to
// compose them.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byUser   map[int64]string
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		byUser:   make(map[int64]string),
	}
}

// Put inserts or overwrites both mappings for the session. It performs
// no uniqueness check; callers evict any previous session first.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.byUser[sess.UserID] = sess.ID
}

// GetByID returns the session for an ID, or nil if absent
func (s *Store) GetByID(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// GetIDByUser returns the current session ID for a user
func (s *Store) GetIDByUser(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUser[userID]
	return id, ok
}

// RemoveByID deletes the session mapping and, if present, the user
// mapping pointing back at it. Reports whether a removal occurred.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	delete(s.sessions, id)
	delete(s.byUser, sess.UserID)
	return true
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
