package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIDUnique(t *testing.T) {
	const n = 10_000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id, err := LinkID()
		require.NoError(t, err)
		require.Len(t, id, LinkIDSize)

		for _, r := range id {
			require.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q in %s", r, id)
		}

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestRequestID(t *testing.T) {
	a, b := RequestID(), RequestID()

	assert.Len(t, a, requestIDSize)
	assert.NotEqual(t, a, b)
}
