// Package validators checks user supplied input before it reaches the registry
package validators

import (
	"bitwise74/file-linker/internal/model"
	"errors"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
)

const maxFileNameSize = 255

// Upload checks an upload before a link is created for it. A maxSize of 0
// disables the size check.
func Upload(u model.Upload, maxSize int64) error {
	if u.ObjectRef == "" {
		return ErrNoFile
	}

	if len(u.DisplayName) > maxFileNameSize {
		return ErrFileNameTooLong
	}

	if maxSize > 0 && u.Size > maxSize {
		return ErrFileTooLarge
	}

	return nil
}
