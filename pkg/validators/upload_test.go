package validators

import (
	"bitwise74/file-linker/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpload(t *testing.T) {
	tests := []struct {
		name    string
		upload  model.Upload
		maxSize int64
		want    error
	}{
		{"ok", model.Upload{ObjectRef: "a", DisplayName: "a.mp4", Size: 10}, 10, nil},
		{"no limit", model.Upload{ObjectRef: "a", Size: 1 << 40}, 0, nil},
		{"no object", model.Upload{DisplayName: "a.mp4"}, 0, ErrNoFile},
		{"too large", model.Upload{ObjectRef: "a", Size: 11}, 10, ErrFileTooLarge},
		{"long name", model.Upload{ObjectRef: "a", DisplayName: strings.Repeat("a", 256)}, 0, ErrFileNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Upload(tt.upload, tt.maxSize), tt.want)
		})
	}
}
