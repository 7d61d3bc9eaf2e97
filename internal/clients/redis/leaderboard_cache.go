package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/easylearn/easylearn-backend/internal/logger"
)

// LeaderboardCache keeps computed group standings for a short window so busy
// groups do not recompute the aggregation on every view. Misses and redis
// failures are both treated as "not cached"; the store stays authoritative.
type LeaderboardCache interface {
	Get(ctx context.Context, groupID uuid.UUID, dest interface{}) (bool, error)
	Set(ctx context.Context, groupID uuid.UUID, value interface{}) error
	Invalidate(ctx context.Context, groupIDs []uuid.UUID) error
	Close() error
}

type leaderboardCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewLeaderboardCache connects using REDIS_ADDR. A missing address is an
// error so callers can decide to run without a cache.
func NewLeaderboardCache(log *logger.Logger) (LeaderboardCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &leaderboardCache{
		log: log.With("service", "LeaderboardCache"),
		rdb: rdb,
		ttl: 30 * time.Second,
	}, nil
}

func cacheKey(groupID uuid.UUID) string {
	return "leaderboard:" + groupID.String()
}

func (c *leaderboardCache) Get(ctx context.Context, groupID uuid.UUID, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(groupID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *leaderboardCache) Set(ctx context.Context, groupID uuid.UUID, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(groupID), raw, c.ttl).Err()
}

func (c *leaderboardCache) Invalidate(ctx context.Context, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(groupIDs))
	for _, id := range groupIDs {
		keys = append(keys, cacheKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *leaderboardCache) Close() error {
	return c.rdb.Close()
}
