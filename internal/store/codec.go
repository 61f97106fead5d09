package store

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Shared backends keep values as JSON so records stay readable by any
// process sharing the backend.

func encode[T any](v T) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value, %w", err)
	}

	return b, nil
}

func decode[T any](b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("failed to decode value, %w", err)
	}

	return v, nil
}
