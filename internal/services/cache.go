package services

import (
  "context"
  "time"

  "github.com/redis/go-redis/v9"

  "github.com/shyftcut/shyftcut-backend/internal/logger"
)

// PublicRoadmapCache fronts public roadmap reads. Implementations must
// degrade to a miss on any backend failure; the cache is never allowed to
// turn a read into an error.
type PublicRoadmapCache interface {
  Get(ctx context.Context, key string) ([]byte, bool)
  Set(ctx context.Context, key string, val []byte, ttl time.Duration)
  Delete(ctx context.Context, key string)
}

type redisPublicCache struct {
  rdb *redis.Client
  log *logger.Logger
}

// NewPublicRoadmapCache wraps a redis client. A nil client yields a nil
// cache, which every caller treats as disabled.
func NewPublicRoadmapCache(rdb *redis.Client, baseLog *logger.Logger) PublicRoadmapCache {
  if rdb == nil {
    return nil
  }
  return &redisPublicCache{rdb: rdb, log: baseLog.With("service", "PublicRoadmapCache")}
}

func (c *redisPublicCache) Get(ctx context.Context, key string) ([]byte, bool) {
  val, err := c.rdb.Get(ctx, key).Bytes()
  if err != nil {
    if err != redis.Nil {
      c.log.Warn("cache get failed", "key", key, "error", err)
    }
    return nil, false
  }
  return val, true
}

func (c *redisPublicCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
  if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
    c.log.Warn("cache set failed", "key", key, "error", err)
  }
}

func (c *redisPublicCache) Delete(ctx context.Context, key string) {
  if err := c.rdb.Del(ctx, key).Err(); err != nil {
    c.log.Warn("cache delete failed", "key", key, "error", err)
  }
}
