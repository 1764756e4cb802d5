package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// reserveScript prunes, checks, and records in one server-side step, so
// concurrent gateway processes sharing the key cannot over-admit.
// KEYS[1] window key; ARGV: cutoff, max, score, member, ttl millis.
var reserveScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// RedisStore keeps the admission window in a Redis sorted set scored by
// timestamp, so multiple gateway processes can share one budget. Members
// carry a uuid suffix so same-instant reservations stay distinct entries.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ Store = (*RedisStore)(nil)

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Key names the sorted set holding the window.
	Key string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	key := cfg.Key
	if key == "" {
		key = "legis-gateway:admission-window"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Reserve(ctx context.Context, now time.Time, window time.Duration, max int) (string, bool, error) {
	token := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.New().String()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	admitted, err := reserveScript.Run(ctx, s.client, []string{s.key},
		cutoff, max, now.UnixNano(), token, window.Milliseconds()).Int()
	if err != nil {
		return "", false, err
	}
	if admitted == 0 {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Release(ctx context.Context, token string) error {
	return s.client.ZRem(ctx, s.key, token).Err()
}
