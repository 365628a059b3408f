package session

import (
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Service is the session lifecycle manager, the only component that
// creates or invalidates sessions.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a session lifecycle manager over the given store
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// GenerateID derives a session identifier from the user ID and a
// timestamp: the user's decimal digits concatenated with the timestamp's
// decimal digits (century prefix dropped), read as one integer and
// rendered as uppercase hex. Two logins for the same user within the
// same second therefore produce the same identifier; the platform
// accepts this since the newer login replaces the older session anyway.
func GenerateID(userID int64, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	if len(ts) > 2 {
		ts = ts[2:]
	}

	n, ok := new(big.Int).SetString(strconv.FormatInt(userID, 10)+ts, 10)
	if !ok {
		return ""
	}
	return strings.ToUpper(n.Text(16))
}

// Create generates a session for the user and registers it, evicting
// any previous session for the same user first. The evict-then-insert
// sequence is deliberately not atomic: between the two steps a
// concurrent lookup for the user's old token observes no session, and
// of two racing logins the last write wins. Each individual store
// operation is still mutex-guarded.
func (s *Service) Create(username string, userID int64, mobile bool, clientType ClientType, locale string, proxied bool) *Session {
	now := s.now()
	sess := &Session{
		ID:         GenerateID(userID, now),
		Username:   username,
		UserID:     userID,
		Mobile:     mobile,
		ClientType: clientType,
		Locale:     locale,
		Proxied:    proxied,
		CreatedAt:  now,
	}

	if oldID, ok := s.store.GetIDByUser(userID); ok {
		s.store.RemoveByID(oldID)
	}

	s.store.Put(sess)
	return sess
}

// Lookup resolves a caller-supplied token to its session, or nil when
// the token is unknown. Malformed tokens simply miss the map; this
// never fails.
func (s *Service) Lookup(id string) *Session {
	return s.store.GetByID(id)
}

// Invalidate drops a session by ID. Idempotent; the second call for the
// same ID reports false.
func (s *Service) Invalidate(id string) bool {
	return s.store.RemoveByID(id)
}
