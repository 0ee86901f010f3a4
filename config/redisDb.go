package config

import (
	"context"
	"log"
	"os"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis wires the client used for per-batch run locks. Redis being
// down degrades to DB-only gating, so a failed ping is not fatal.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		log.Printf("REDIS_ADDRESS not set; validation run locks disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis ping failed (%v); validation run locks disabled", err)
		return
	}

	rdb = client
	locker = redislock.New(client)
}
