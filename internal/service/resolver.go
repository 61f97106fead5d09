package service

import (
	"context"
	"mime"
)

// FetchOptions are hints for building the fetch location
type FetchOptions struct {
	Attachment bool   // Ask the upstream to serve the object as a download
	FileName   string // Name to use for the attachment
}

// ObjectResolver turns an object reference into a URL the client can fetch.
// Failures are internal errors, never a reason to report a link as gone.
type ObjectResolver interface {
	FetchURL(ctx context.Context, objectRef string, o FetchOptions) (string, error)
}

// ContentDisposition builds an attachment disposition for name, falling back
// to "file" when name is empty
func ContentDisposition(name string) string {
	if name == "" {
		name = "file"
	}

	v := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if v == "" {
		return `attachment; filename="file"`
	}

	return v
}
