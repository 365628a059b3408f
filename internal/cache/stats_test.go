package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupStats(t *testing.T) (*Stats, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatsWithClient(client), mr
}

func TestStats_HitAndSnapshot(t *testing.T) {
	stats, _ := setupStats(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		stats.Hit(ctx)
	}

	// The per-minute figure only updates once a snapshot runs
	if got := stats.ConnectionsPerMinute(ctx); got != 0 {
		t.Errorf("ConnectionsPerMinute() = %d before snapshot, want 0", got)
	}

	stats.Snapshot(ctx)

	if got := stats.ConnectionsPerMinute(ctx); got != 5 {
		t.Errorf("ConnectionsPerMinute() = %d, want 5", got)
	}
}

func TestStats_SnapshotResetsCounter(t *testing.T) {
	stats, _ := setupStats(t)
	ctx := context.Background()

	stats.Hit(ctx)
	stats.Hit(ctx)
	stats.Snapshot(ctx)

	stats.Hit(ctx)
	stats.Snapshot(ctx)

	if got := stats.ConnectionsPerMinute(ctx); got != 1 {
		t.Errorf("ConnectionsPerMinute() = %d after second snapshot, want 1", got)
	}
}

func TestStats_SnapshotWithNoTraffic(t *testing.T) {
	stats, _ := setupStats(t)
	ctx := context.Background()

	stats.Snapshot(ctx)

	if got := stats.ConnectionsPerMinute(ctx); got != 0 {
		t.Errorf("ConnectionsPerMinute() = %d with no traffic, want 0", got)
	}
}

func TestStats_ConnectionsPerMinuteMissingKey(t *testing.T) {
	stats, _ := setupStats(t)

	if got := stats.ConnectionsPerMinute(context.Background()); got != 0 {
		t.Errorf("ConnectionsPerMinute() = %d with empty redis, want 0", got)
	}
}
