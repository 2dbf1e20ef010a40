package kv

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore persists keys in a shared Redis instance under a fixed prefix,
// so several deployments can point at one server without colliding.
type redisStore struct {
	rdb *redis.Client
	ctx context.Context
}

const redisPrefix = "tindahan:store:"

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string) (Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kv/redis: ping: %w", err)
	}
	return &redisStore{rdb: rdb, ctx: ctx}, nil
}

func (s *redisStore) Read(key string) ([]byte, error) {
	value, err := s.rdb.Get(s.ctx, redisPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/redis: read %s: %w", key, err)
	}
	return value, nil
}

func (s *redisStore) Write(key string, value []byte) error {
	if err := s.rdb.Set(s.ctx, redisPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv/redis: write %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(key string) error {
	if err := s.rdb.Del(s.ctx, redisPrefix+key).Err(); err != nil {
		return fmt.Errorf("kv/redis: delete %s: %w", key, err)
	}
	return nil
}
