package redis

import (
	"context"
	"log"
	"time"

	"devconnector/internal/config"

	redis_v9 "github.com/redis/go-redis/v9"
)

var Redis_Client *redis_v9.Client

func Connect(cfg config.RedisConfig) {
	Redis_Client = redis_v9.NewClient(&redis_v9.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis_Client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Could not verify Redis connection: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}

func Disconnect() {
	if Redis_Client != nil {
		if err := Redis_Client.Close(); err != nil {
			log.Printf("Error closing Redis client: %s", err)
		}
	}
}
