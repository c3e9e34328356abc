package embedstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/peerlink/matchmaker/internal/store"
)

// Cache is a read-through layer in front of the embedding store. Keys are
// opaque to the cache.
type Cache interface {
	Name() string
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, vec []float32) error
	Delete(ctx context.Context, key string) error
}

// LRUCache keeps vectors in process memory.
type LRUCache struct {
	lru *expirable.LRU[string, []float32]
}

// NewLRUCache holds up to size vectors, each for at most ttl (0 keeps them
// until evicted).
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{lru: expirable.NewLRU[string, []float32](size, nil, ttl)}
}

func (c *LRUCache) Name() string { return "memory" }

func (c *LRUCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return cloneVector(v), true, nil
}

func (c *LRUCache) Set(_ context.Context, key string, vec []float32) error {
	c.lru.Add(key, cloneVector(vec))
	return nil
}

func (c *LRUCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Len reports the number of cached vectors.
func (c *LRUCache) Len() int { return c.lru.Len() }

// RedisCache stores vectors as packed float32 strings under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Name() string { return "redis" }

func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	vec, err := store.DecodeVector(b)
	if err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, vec []float32) error {
	if err := c.client.Set(ctx, c.prefix+key, store.EncodeVector(vec), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// HealthPing implements health.HealthPinger.
func (c *RedisCache) HealthPing(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NopCache disables caching.
type NopCache struct{}

func (NopCache) Name() string                                          { return "none" }
func (NopCache) Get(context.Context, string) ([]float32, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []float32) error         { return nil }
func (NopCache) Delete(context.Context, string) error                 { return nil }

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
