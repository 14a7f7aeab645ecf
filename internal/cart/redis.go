package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/address"
)

// RedisStorage persists cart state in Redis. Carts are session state, so they
// carry a TTL and an abandoned cart simply expires.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, key string) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    key,
		ttl:    7 * 24 * time.Hour,
	}
}

func (r *RedisStorage) Load() ([]Line, *address.Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("redis get failed: %w", err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return st.Lines, st.Address, nil
}

func (r *RedisStorage) Save(lines []Line, addr *address.Address) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(state{Lines: lines, Address: addr})
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
