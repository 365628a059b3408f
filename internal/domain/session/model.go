package session

import (
	"fmt"
	"time"
)

// ClientType enumerates the registered API client kinds
type ClientType int

const (
	ClientTypeLegacy ClientType = iota
	ClientTypeStandard
	ClientTypeEngineBot
)

// String returns the wire name of the client type
func (t ClientType) String() string {
	switch t {
	case ClientTypeLegacy:
		return "LEGACY"
	case ClientTypeStandard:
		return "STANDARD"
	case ClientTypeEngineBot:
		return "ENGINE_BOT"
	default:
		return "UNKNOWN"
	}
}

// ParseClientType parses a wire name into a ClientType
func ParseClientType(s string) (ClientType, error) {
	switch s {
	case "LEGACY":
		return ClientTypeLegacy, nil
	case "STANDARD":
		return ClientTypeStandard, nil
	case "ENGINE_BOT":
		return ClientTypeEngineBot, nil
	default:
		return 0, fmt.Errorf("invalid client type: %s", s)
	}
}

// Session binds an opaque token to an authenticated user's identity and
// client context for the duration of one login. Sessions are immutable
// after creation; only the store may drop them.
type Session struct {
	ID         string
	Username   string
	UserID     int64
	Mobile     bool
	ClientType ClientType
	Locale     string
	Proxied    bool
	CreatedAt  time.Time
}
