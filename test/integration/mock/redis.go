package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client for a process-wide miniredis server.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(&redis.Options{
		Addr: miniRedis.Addr(),
	})
}

// ClearRedis drops every cached key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

// CountKeys returns how many keys match pattern.
func CountKeys(client *redis.Client, pattern string) (int, error) {
	keys, err := client.Keys(context.Background(), pattern).Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
