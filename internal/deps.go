package internal

import "bitwise74/file-linker/internal/service"

type Deps struct {
	Registry      *service.Registry
	Resolver      service.ObjectResolver
	BaseURL       string // No trailing slash
	MaxUploadSize int64  // Bytes, 0 disables the check
}
