package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestMemorySetGetDel(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[item](time.Minute)
	defer s.Close()

	_, ok, err := s.Get(ctx, "link:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "link:a", item{Name: "a", N: 1}, time.Minute))
	require.NoError(t, s.Set(ctx, "link:a", item{Name: "a", N: 2}, time.Minute))

	v, ok, err := s.Get(ctx, "link:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item{Name: "a", N: 2}, v)

	require.NoError(t, s.Del(ctx, "link:a"))
	require.NoError(t, s.Del(ctx, "link:a"))

	_, ok, err = s.Get(ctx, "link:a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[item](time.Hour)

	require.NoError(t, s.Set(ctx, "link:short", item{Name: "short"}, 50*time.Millisecond))

	_, ok, err := s.Get(ctx, "link:short")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(80 * time.Millisecond)

	_, ok, err = s.Get(ctx, "link:short")
	require.NoError(t, err)
	assert.False(t, ok)

	// Purged on read even though the janitor hasn't run
	assert.Zero(t, s.c.ItemCount())
}

func TestMemoryRejectsNonPositiveTTL(t *testing.T) {
	s := NewMemory[item](0)

	assert.ErrorIs(t, s.Set(context.Background(), "k", item{}, 0), ErrInvalidTTL)
	assert.ErrorIs(t, s.Set(context.Background(), "k", item{}, -time.Second), ErrInvalidTTL)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[item](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("link:%d", i)

			assert.NoError(t, s.Set(ctx, key, item{N: i}, time.Minute))
			v, ok, err := s.Get(ctx, key)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, i, v.N)
			assert.NoError(t, s.Del(ctx, key))
		}(i)
	}
	wg.Wait()

	assert.Zero(t, s.c.ItemCount())
}
