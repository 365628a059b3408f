package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stagetribe/stagetribe/internal/config"
)

const (
	// connectionsKey counts requests since the last snapshot
	connectionsKey = "stats:connections"
	// perMinuteKey holds the last completed per-minute snapshot
	perMinuteKey = "stats:connections_per_minute"

	snapshotInterval = time.Minute
)

// Stats tracks request traffic in redis so the counter survives
// restarts and is shared across replicas.
type Stats struct {
	client *redis.Client
}

// NewStats connects to redis and verifies connectivity
func NewStats(cfg *config.RedisConfig) (*Stats, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis connected successfully", "address", cfg.Address())
	return &Stats{client: client}, nil
}

// NewStatsWithClient wraps an existing redis client; used by tests
func NewStatsWithClient(client *redis.Client) *Stats {
	return &Stats{client: client}
}

// Hit counts one handled request
func (s *Stats) Hit(ctx context.Context) {
	if err := s.client.Incr(ctx, connectionsKey).Err(); err != nil {
		slog.Warn("Failed to count connection", "error", err)
	}
}

// ConnectionsPerMinute returns the last completed snapshot
func (s *Stats) ConnectionsPerMinute(ctx context.Context) int64 {
	count, err := s.client.Get(ctx, perMinuteKey).Int64()
	if err != nil {
		return 0
	}
	return count
}

// Run snapshots the connection counter once per minute until the
// context is cancelled.
func (s *Stats) Run(ctx context.Context) {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Snapshot(ctx)
		}
	}
}

// Snapshot moves the live counter into the per-minute slot and resets it
func (s *Stats) Snapshot(ctx context.Context) {
	count, err := s.client.GetDel(ctx, connectionsKey).Int64()
	if err != nil && err != redis.Nil {
		slog.Warn("Failed to snapshot connection counter", "error", err)
		return
	}
	if err := s.client.Set(ctx, perMinuteKey, count, 0).Err(); err != nil {
		slog.Warn("Failed to store connection snapshot", "error", err)
	}
}

// Close flushes the counters and releases the redis connection
func (s *Stats) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, connectionsKey, perMinuteKey).Err(); err != nil {
		slog.Warn("Failed to clear stats keys", "error", err)
	}
	return s.client.Close()
}
