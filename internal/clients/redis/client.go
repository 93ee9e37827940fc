package redis

import (
  "context"
  "time"

  "github.com/redis/go-redis/v9"

  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/utils"
)

// New connects to redis using REDIS_ADDR / REDIS_PASSWORD / REDIS_DB.
// Returns nil without error when no address is configured; callers treat a
// nil client as "cache disabled".
func New(log *logger.Logger) (*redis.Client, error) {
  addr := utils.GetEnv("REDIS_ADDR", "", log)
  if addr == "" {
    log.Info("REDIS_ADDR not set, running without cache")
    return nil, nil
  }

  client := redis.NewClient(&redis.Options{
    Addr:     addr,
    Password: utils.GetEnv("REDIS_PASSWORD", "", log),
    DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := client.Ping(ctx).Err(); err != nil {
    return nil, err
  }
  return client, nil
}
