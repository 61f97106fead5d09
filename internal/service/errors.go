package service

import "errors"

var (
	// ErrGone covers links that never existed, expired or were revoked. Callers
	// must not be able to tell these apart.
	ErrGone        = errors.New("link expired or revoked")
	ErrForbidden   = errors.New("not allowed to revoke this link")
	ErrNoObjectRef = errors.New("no object reference provided")
)
