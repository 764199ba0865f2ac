package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/repository"

	"github.com/redis/go-redis/v9"
)

type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) key(tenantID uint, scope, key string) string {
	return fmt.Sprintf("idemp:%d:%s:%s", tenantID, scope, key)
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, tenantID uint, scope, key, value string) error {
	// SETNX: ค่าแรกชนะ retry ที่มาทีหลังไป Recall เอา
	return s.rdb.SetNX(ctx, s.key(tenantID, scope, key), value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, tenantID uint, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(tenantID, scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

var _ repository.IdempotencyStore = (*RedisIdempotencyStore)(nil)
