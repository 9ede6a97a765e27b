package config

import (
	"Scorekeeper/services/redis"
	"log"
)

// ConnectRedis opens the Redis connection used for session-scoped state
// (active campaign selection, admin-mode flags, invite join intent).
func ConnectRedis(cfg *Config) (*redis.RedisClient, error) {
	redisClient, err := redis.InitRedis(cfg.RedisURL, 0)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
