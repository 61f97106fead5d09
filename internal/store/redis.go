package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DialRedis connects to the redis server described by rawURL and checks
// that it answers
func DialRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url, %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to reach redis, %w", err)
	}

	return rdb, nil
}

// Redis is a shared variant. Expiry is enforced by redis itself.
type Redis[T any] struct {
	rdb *redis.Client
}

func NewRedis[T any](rdb *redis.Client) *Redis[T] {
	return &Redis[T]{rdb: rdb}
}

func (r *Redis[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	b, err := encode(value)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed, %w", err)
	}

	return nil
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}

		return zero, false, fmt.Errorf("redis get failed, %w", err)
	}

	v, err := decode[T](b)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

func (r *Redis[T]) Del(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed, %w", err)
	}

	return nil
}

func (r *Redis[T]) Kind() string {
	return "redis"
}

func (r *Redis[T]) Close() error {
	return r.rdb.Close()
}
