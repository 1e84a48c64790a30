package config

import (
	"fmt"
	"log/slog"

	"gopkg.in/redis.v5"
)

func SetupRedis(cfg *Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.URL,
	})

	pong, err := redisClient.Ping().Result()
	if err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Redis.URL, err)
	}
	slog.Info("Redis connected", slog.String("pong", pong))

	return redisClient, nil
}
