package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func testSession(id string, userID int64) *Session {
	return &Session{
		ID:         id,
		Username:   fmt.Sprintf("user%d", userID),
		UserID:     userID,
		ClientType: ClientTypeStandard,
		Locale:     "en_US",
		CreatedAt:  time.Now(),
	}
}

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore()

	sess := testSession("ABC123", 1)
	store.Put(sess)

	got := store.GetByID("ABC123")
	if got == nil {
		t.Fatalf("GetByID() returned nil for stored session")
	}
	if got.UserID != 1 {
		t.Errorf("GetByID() userID = %d, want 1", got.UserID)
	}

	id, ok := store.GetIDByUser(1)
	if !ok {
		t.Fatalf("GetIDByUser() reported no session for user 1")
	}
	if id != "ABC123" {
		t.Errorf("GetIDByUser() = %q, want %q", id, "ABC123")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore()

	if got := store.GetByID("nonexistent-token"); got != nil {
		t.Errorf("GetByID() = %v, want nil for unknown token", got)
	}
	if _, ok := store.GetIDByUser(99); ok {
		t.Errorf("GetIDByUser() reported a session for an unknown user")
	}
}

func TestStore_RemoveByID(t *testing.T) {
	store := NewStore()
	store.Put(testSession("ABC123", 1))

	if !store.RemoveByID("ABC123") {
		t.Fatalf("RemoveByID() = false, want true for existing session")
	}
	if store.GetByID("ABC123") != nil {
		t.Errorf("GetByID() found session after removal")
	}
	if _, ok := store.GetIDByUser(1); ok {
		t.Errorf("GetIDByUser() found mapping after removal")
	}

	// Second removal is a no-op
	if store.RemoveByID("ABC123") {
		t.Errorf("RemoveByID() = true on second call, want false")
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := NewStore()
	store.Put(testSession("OLD", 7))
	store.Put(testSession("NEW", 7))

	id, ok := store.GetIDByUser(7)
	if !ok || id != "NEW" {
		t.Errorf("GetIDByUser() = %q, want %q", id, "NEW")
	}
	// Put performs no eviction on its own; the old ID still resolves
	if store.GetByID("OLD") == nil {
		t.Errorf("GetByID() lost old session; Put must not evict")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			id := fmt.Sprintf("SESS%d", n)
			store.Put(testSession(id, n))
			store.GetByID(id)
			store.GetIDByUser(n)
			store.RemoveByID(id)
		}(int64(i))
	}
	wg.Wait()

	if store.Len() != 0 {
		t.Errorf("Len() = %d after removing everything, want 0", store.Len())
	}
}
