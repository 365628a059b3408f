package session

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		at     time.Time
		want   string
	}{
		{
			// digits "42" + "00000000" = 4200000000 = 0xFA56EA00
			name:   "user 42",
			userID: 42,
			at:     time.Unix(1700000000, 0),
			want:   "FA56EA00",
		},
		{
			// digits "1" + "00000001" = 100000001 = 0x5F5E101
			name:   "user 1",
			userID: 1,
			at:     time.Unix(1700000001, 0),
			want:   "5F5E101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateID(tt.userID, tt.at)
			if got != tt.want {
				t.Errorf("GenerateID(%d, %d) = %q, want %q", tt.userID, tt.at.Unix(), got, tt.want)
			}
		})
	}
}

func TestGenerateID_SameSecondCollides(t *testing.T) {
	at := time.Unix(1700000123, 0)
	first := GenerateID(42, at)
	second := GenerateID(42, at)
	if first != second {
		t.Errorf("GenerateID() not deterministic within one second: %q vs %q", first, second)
	}
}

func TestService_Create_SingleSessionInvariant(t *testing.T) {
	svc := NewService(NewStore())

	clock := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return clock }

	first := svc.Create("alice", 42, false, ClientTypeStandard, "en_US", false)

	clock = clock.Add(time.Second)
	second := svc.Create("alice", 42, false, ClientTypeStandard, "en_US", false)

	if first.ID == second.ID {
		t.Fatalf("expected distinct session IDs across seconds")
	}

	id, ok := svc.store.GetIDByUser(42)
	if !ok || id != second.ID {
		t.Errorf("GetIDByUser(42) = %q, want %q", id, second.ID)
	}

	if got := svc.Lookup(first.ID); got != nil {
		t.Errorf("Lookup(first) = %v, want nil after re-login", got)
	}
	if got := svc.Lookup(second.ID); got == nil {
		t.Errorf("Lookup(second) = nil, want the live session")
	}
}

func TestService_Create_SameSecondReplaces(t *testing.T) {
	svc := NewService(NewStore())
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	first := svc.Create("bob", 7, false, ClientTypeLegacy, "en_US", false)
	second := svc.Create("bob", 7, true, ClientTypeLegacy, "en_US", false)

	// Same user, same second: the derived ID repeats and the newer
	// session simply replaces the older one under that ID.
	if first.ID != second.ID {
		t.Fatalf("expected identical IDs within one second, got %q and %q", first.ID, second.ID)
	}
	if svc.store.Len() != 1 {
		t.Errorf("store holds %d sessions, want 1", svc.store.Len())
	}
	got := svc.Lookup(second.ID)
	if got == nil || !got.Mobile {
		t.Errorf("Lookup() did not return the newest session")
	}
}

func TestService_Create_PopulatesSession(t *testing.T) {
	svc := NewService(NewStore())

	sess := svc.Create("carol", 9, true, ClientTypeEngineBot, "es_ES", true)

	if sess.Username != "carol" || sess.UserID != 9 {
		t.Errorf("Create() identity = (%q, %d), want (carol, 9)", sess.Username, sess.UserID)
	}
	if !sess.Mobile || !sess.Proxied {
		t.Errorf("Create() flags = (mobile=%v, proxied=%v), want both true", sess.Mobile, sess.Proxied)
	}
	if sess.ClientType != ClientTypeEngineBot {
		t.Errorf("Create() clientType = %v, want ENGINE_BOT", sess.ClientType)
	}
	if sess.Locale != "es_ES" {
		t.Errorf("Create() locale = %q, want es_ES", sess.Locale)
	}
	if sess.CreatedAt.IsZero() {
		t.Errorf("Create() did not stamp CreatedAt")
	}
}

func TestService_Lookup_NotFound(t *testing.T) {
	svc := NewService(NewStore())

	if got := svc.Lookup("nonexistent-token"); got != nil {
		t.Errorf("Lookup() = %v, want nil for unknown token", got)
	}
	// Malformed tokens miss the map the same way
	if got := svc.Lookup(""); got != nil {
		t.Errorf("Lookup(\"\") = %v, want nil", got)
	}
}

func TestService_Invalidate_Idempotent(t *testing.T) {
	svc := NewService(NewStore())
	sess := svc.Create("dave", 3, false, ClientTypeStandard, "en_US", false)

	if !svc.Invalidate(sess.ID) {
		t.Fatalf("Invalidate() = false on live session, want true")
	}
	if svc.Invalidate(sess.ID) {
		t.Errorf("Invalidate() = true on second call, want false")
	}
	if got := svc.Lookup(sess.ID); got != nil {
		t.Errorf("Lookup() = %v after invalidation, want nil", got)
	}
}

func TestClientType_RoundTrip(t *testing.T) {
	for _, name := range []string{"LEGACY", "STANDARD", "ENGINE_BOT"} {
		ct, err := ParseClientType(name)
		if err != nil {
			t.Fatalf("ParseClientType(%q) error: %v", name, err)
		}
		if ct.String() != name {
			t.Errorf("ClientType round trip = %q, want %q", ct.String(), name)
		}
	}

	if _, err := ParseClientType("TOASTER"); err == nil {
		t.Errorf("ParseClientType() accepted an unknown client type")
	}
}
