package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects a Redis client for the given logical DB and fails
// fast when the server is unreachable.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}
