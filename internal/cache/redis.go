package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "docsplit:chunks:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects and pings the server.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]doctree.Chunk, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var chunks []doctree.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decode cached chunks: %w", err)
	}
	return chunks, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, chunks []doctree.Chunk, ttl time.Duration) error {
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encode chunks: %w", err)
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
