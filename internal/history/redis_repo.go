package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the whole history as one JSON string under a single key.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository connects to redisURL and verifies the connection.
func NewRedisRepository(ctx context.Context, redisURL, key string) (*RedisRepository, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required for the redis history backend")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisRepository{client: client, key: key}, nil
}

func (r *RedisRepository) Load(ctx context.Context) (Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	snap := Snapshot{}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: key %s: %v", ErrCorrupt, r.key, err)
	}
	return snap, nil
}

func (r *RedisRepository) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
