package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"go-admin-console/internal/feature/user"
)

// RedisBackend keeps sessions in redis so they survive restarts and can
// be shared across instances. Values are JSON-encoded profiles; redis
// owns expiry via the key TTL.
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisBackend(addr, password string, db int) *RedisBackend {
	return &RedisBackend{
		rdb:    redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		prefix: "session:",
	}
}

func (b *RedisBackend) Put(ctx context.Context, token string, p user.Profile, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return b.rdb.Set(ctx, b.prefix+token, raw, ttl).Err()
}

func (b *RedisBackend) Get(ctx context.Context, token string) (*user.Profile, error) {
	raw, err := b.rdb.Get(ctx, b.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p user.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (b *RedisBackend) Del(ctx context.Context, token string) error {
	return b.rdb.Del(ctx, b.prefix+token).Err()
}
