package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url gives memory", func(t *testing.T) {
		s, err := Open[item](ctx, "", Options{})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, "memory", s.Kind())
	})

	t.Run("redis url", func(t *testing.T) {
		mr := miniredis.RunT(t)

		s, err := Open[item](ctx, "redis://"+mr.Addr()+"/0", Options{})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, "redis", s.Kind())
		require.NoError(t, s.Set(ctx, "link:x", item{Name: "x"}, time.Minute))
		assert.True(t, mr.Exists("link:x"))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		_, err := Open[item](ctx, "redis://127.0.0.1:1", Options{})
		assert.Error(t, err)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := Open[item](ctx, "mongodb://localhost", Options{})
		assert.ErrorIs(t, err, ErrUnsupportedURL)
	})
}
