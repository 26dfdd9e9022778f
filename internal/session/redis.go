package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:admin:"

// RedisRegistry stores sessions as plain keys so they survive restarts and
// are shared between replicas.
type RedisRegistry struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRegistry connects to rawURL (redis://...). A zero ttl keeps
// sessions until the key is removed.
func NewRedisRegistry(ctx context.Context, rawURL string, ttl time.Duration) (*RedisRegistry, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisRegistry{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisRegistry) Create(ctx context.Context, adminID uint) (string, error) {
	token := uuid.NewString()
	if err := r.rdb.Set(ctx, keyPrefix+token, strconv.FormatUint(uint64(adminID), 10), r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (r *RedisRegistry) Resolve(ctx context.Context, token string) (uint, bool, error) {
	v, err := r.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session: %w", err)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session %q: %w", v, err)
	}
	return uint(id), true, nil
}

func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisRegistry) Close(context.Context) error {
	return r.rdb.Close()
}

var _ Registry = (*RedisRegistry)(nil)
