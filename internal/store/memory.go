package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = time.Minute

// Memory is the volatile variant. Nothing survives a restart.
type Memory[T any] struct {
	c *cache.Cache
}

func NewMemory[T any](cleanupInterval time.Duration) *Memory[T] {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	return &Memory[T]{
		c: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (m *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	m.c.Set(key, value, ttl)
	return nil
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool, error) {
	var zero T

	// go-cache hides entries past their expiry, the janitor only removes them later
	v, ok := m.c.Get(key)
	if !ok {
		// Keys are written once with fresh ids so this can't drop a newer value
		m.c.Delete(key)
		return zero, false, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, false, nil
	}

	return t, true, nil
}

func (m *Memory[T]) Del(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory[T]) Kind() string {
	return "memory"
}

func (m *Memory[T]) Close() error {
	m.c.Flush()
	return nil
}
