package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKey = "moviecat:session"

// RedisStorage keeps the session in Redis, for deployments where several
// hosts share one signed-in identity. A zero TTL stores without expiry.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage builds a Redis-backed session storage.
func NewRedisStorage(addr, password string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (s *RedisStorage) Save(data Data) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, redisKey, buf, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *RedisStorage) Load() (Data, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, fmt.Errorf("read session: %w", err)
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return Data{}, false, nil
	}
	if data.Token == "" {
		return Data{}, false, nil
	}
	return data, true, nil
}

func (s *RedisStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, redisKey).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
