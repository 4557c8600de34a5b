package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

const (
	statsKey = "dashboard:stats"
	statsTTL = 30 * time.Second
)

// StatsCache caches the dashboard aggregate counters in Redis. Only derived
// numbers go through here; identity and credential data never touch the cache.
type StatsCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, logger zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, logger: logger}
}

// Get returns the cached stats snapshot, or ok=false on a miss. Cache errors
// are logged and treated as misses so a Redis outage never breaks the
// dashboard.
func (s *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, bool) {
	raw, err := s.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache decode failed")
		return nil, false
	}
	return &stats, true
}

// Set stores a stats snapshot with a short TTL.
func (s *StatsCache) Set(ctx context.Context, stats *domain.DashboardStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
}
