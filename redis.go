package gmcrypt

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV adapts a go-redis client to the KV interface. Entries are written
// without expiry; the key pair lives until Clear.
type RedisKV struct {
	client redis.UniversalClient
}

// NewRedisKV returns a KV backed by the given Redis client.
func NewRedisKV(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

var _ KV = &RedisKV{}
