package cache

import (
	"fmt"

	"gopkg.in/redis.v5"
)

const MAX_NUMBER_CACHED = 3

type RedisRequestCacher struct {
	MaxNumber   int
	RedisClient *redis.Client
}

func NewRedisRequestCacher(redisClient *redis.Client, maxNumber int) *RedisRequestCacher {
	if maxNumber <= 0 {
		maxNumber = MAX_NUMBER_CACHED
	}
	return &RedisRequestCacher{maxNumber, redisClient}
}

// Write pushes value and trims the list in one MULTI/EXEC, so the list never
// outgrows MaxNumber.
func (cacher *RedisRequestCacher) Write(key string, value []byte) error {
	_, err := cacher.RedisClient.TxPipelined(func(pipe *redis.Pipeline) error {
		pipe.LPush(key, value)
		pipe.LTrim(key, 0, int64(cacher.MaxNumber-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache request for %q: %w", key, err)
	}
	return nil
}

func (cacher *RedisRequestCacher) Read(key string) ([]string, error) {
	return cacher.RedisClient.LRange(key, 0, int64(cacher.MaxNumber-1)).Result()
}
