package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/config"
	"github.com/peerlink/matchmaker/internal/embedstore"
)

// RedisKeyPrefix namespaces cached vectors in a shared Redis.
const RedisKeyPrefix = "matchmaker:emb:"

// NewEmbeddingCache builds the vector cache named by cfg.CacheDriver. The
// returned close func is never nil.
func NewEmbeddingCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (embedstore.Cache, func() error, error) {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	noop := func() error { return nil }

	switch cfg.CacheDriver {
	case "", "memory":
		size := cfg.CacheSize
		if size <= 0 {
			size = 1024
		}
		return embedstore.NewLRUCache(size, ttl), noop, nil
	case "none":
		return embedstore.NopCache{}, noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			// the health checker keeps probing; requests fall through to the store meanwhile
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis cache unreachable at startup")
		}
		return embedstore.NewRedisCache(client, RedisKeyPrefix, ttl), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown CACHE_DRIVER: %s", cfg.CacheDriver)
	}
}
