// Package store contains the key-value record stores with per-entry expiration.
// One variant is picked at startup from the store URL and used for the whole
// life of the process.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidTTL     = errors.New("ttl must be bigger than 0")
	ErrUnsupportedURL = errors.New("unsupported store url scheme")
)

// Store keeps values of type T under string keys until their TTL runs out.
//
// Set replaces any previous value. Get never returns a value whose TTL has
// lapsed and reports absence with ok == false and a nil error. Del is
// idempotent. Any returned error is a backend or serialization failure.
type Store[T any] interface {
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Get(ctx context.Context, key string) (value T, ok bool, err error)
	Del(ctx context.Context, key string) error
	Kind() string
	Close() error
}

// Options tune the variants. Fields a variant doesn't use are ignored.
type Options struct {
	CleanupInterval time.Duration // memory janitor
	Timeout         time.Duration // memcached socket timeout
}

// Open picks the store variant from rawURL. An empty url gives the volatile
// in-process store, redis:// and rediss:// give redis and memcache:// gives
// memcached (several servers may be comma separated).
func Open[T any](ctx context.Context, rawURL string, o Options) (Store[T], error) {
	if rawURL == "" {
		return NewMemory[T](o.CleanupInterval), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store url, %w", err)
	}

	switch u.Scheme {
	case "redis", "rediss":
		rdb, err := DialRedis(ctx, rawURL)
		if err != nil {
			return nil, err
		}

		return NewRedis[T](rdb), nil
	case "memcache", "memcached":
		servers := strings.Split(strings.TrimPrefix(rawURL, u.Scheme+"://"), ",")

		mc, err := DialMemcached(o.Timeout, servers...)
		if err != nil {
			return nil, err
		}

		return NewMemcached[T](mc), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, u.Scheme)
	}
}
