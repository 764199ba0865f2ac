package configs

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis คืน nil ถ้าไม่ได้ config หรือ ping ไม่ผ่าน (ระบบ fallback ไป DB store)
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ redis unreachable at %s, falling back to db idempotency store: %v", addr, err)
		return nil
	}
	return rdb
}
