package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "collection:"

// RedisBlob keeps each collection under one Redis key, written as a single
// value. Values never expire; the collection store owns their lifecycle.
type RedisBlob struct {
	client *redis.Client
}

// NewRedisBlob wraps an already-connected Redis client.
func NewRedisBlob(client *redis.Client) *RedisBlob {
	return &RedisBlob{client: client}
}

func (b *RedisBlob) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (b *RedisBlob) Write(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
