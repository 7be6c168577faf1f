package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"academic_backend/internals/configs"
)

// ConnectRedis returns nil when REDIS_ADDR is empty or the server does not
// answer; the report cache then falls back to a no-op.
func ConnectRedis() *redis.Client {
	if configs.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] could not connect to %s: %v (report cache disabled)", configs.RedisAddr, err)
		_ = rdb.Close()
		return nil
	}
	log.Printf("[REDIS] connected to %s db=%d", configs.RedisAddr, configs.RedisDB)
	return rdb
}
