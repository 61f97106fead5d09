package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Relative expirations longer than this are read by memcached as unix timestamps
const maxRelativeExpiry = 30 * 24 * time.Hour

// DialMemcached builds a client for the given servers and pings them
func DialMemcached(timeout time.Duration, servers ...string) (*memcache.Client, error) {
	if len(servers) == 0 || servers[0] == "" {
		return nil, errors.New("no memcached servers provided")
	}

	mc := memcache.New(servers...)
	if timeout > 0 {
		mc.Timeout = timeout
	}

	if err := mc.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach memcached, %w", err)
	}

	return mc, nil
}

// memcacheClient is the part of *memcache.Client the store uses
type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
	Close() error
}

// Memcached is a shared variant using the native item expiration.
// The client has no context support, cancellation is only checked before
// each call and the socket timeout bounds the rest.
type Memcached[T any] struct {
	mc memcacheClient
}

func NewMemcached[T any](mc *memcache.Client) *Memcached[T] {
	return &Memcached[T]{mc: mc}
}

func expiration(ttl time.Duration) int32 {
	// The server clock ticks in whole seconds, one extra keeps the item
	// alive for at least ttl
	secs := int64(math.Ceil(ttl.Seconds())) + 1
	if secs > int64(maxRelativeExpiry/time.Second) {
		return int32(time.Now().Unix() + secs)
	}

	return int32(secs)
}

func (m *Memcached[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := encode(value)
	if err != nil {
		return err
	}

	err = m.mc.Set(&memcache.Item{
		Key:        key,
		Value:      b,
		Expiration: expiration(ttl),
	})
	if err != nil {
		return fmt.Errorf("memcached set failed, %w", err)
	}

	return nil
}

func (m *Memcached[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	it, err := m.mc.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return zero, false, nil
		}

		return zero, false, fmt.Errorf("memcached get failed, %w", err)
	}

	v, err := decode[T](it.Value)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

func (m *Memcached[T]) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := m.mc.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("memcached delete failed, %w", err)
	}

	return nil
}

func (m *Memcached[T]) Kind() string {
	return "memcached"
}

func (m *Memcached[T]) Close() error {
	return m.mc.Close()
}
