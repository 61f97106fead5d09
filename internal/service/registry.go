package service

import (
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/internal/store"
	"bitwise74/file-linker/pkg/util"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "link:"

// Key returns the store key a link id lives under
func Key(id string) string {
	return keyPrefix + id
}

type RegistryOpts struct {
	DefaultTTL time.Duration
	AdminID    *int64 // nil when no administrator is configured
}

// Registry maps uploads to link records and link ids back to records
type Registry struct {
	store      store.Store[model.Link]
	defaultTTL time.Duration
	adminID    *int64

	newID func() (string, error)
	now   func() time.Time
}

func NewRegistry(s store.Store[model.Link], o RegistryOpts) *Registry {
	return &Registry{
		store:      s,
		defaultTTL: o.DefaultTTL,
		adminID:    o.AdminID,
		newID:      util.LinkID,
		now:        time.Now,
	}
}

// StoreKind names the backing store variant
func (r *Registry) StoreKind() string {
	return r.store.Kind()
}

// TTL returns the lifetime a link created from u will get
func (r *Registry) TTL(u model.Upload) time.Duration {
	if u.TTL > 0 {
		return u.TTL
	}

	return r.defaultTTL
}

// CreateLink builds a record for the upload and stores it under a fresh id.
// Id collisions are not checked for.
func (r *Registry) CreateLink(ctx context.Context, u model.Upload) (*model.Link, error) {
	if u.ObjectRef == "" {
		return nil, ErrNoObjectRef
	}

	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate link id, %w", err)
	}

	kind := u.Kind
	if kind == "" {
		kind = model.KindFile
	}

	password := u.Password
	if password != nil && *password == "" {
		password = nil
	}

	link := &model.Link{
		ID:          id,
		ObjectRef:   u.ObjectRef,
		DisplayName: u.DisplayName,
		OwnerID:     u.OwnerID,
		CreatedAt:   r.now().UTC(),
		Password:    password,
		Kind:        kind,
	}

	if err := r.store.Set(ctx, Key(id), *link, r.TTL(u)); err != nil {
		return nil, fmt.Errorf("failed to store link, %w", err)
	}

	linksCreatedTotal.WithLabelValues(string(kind)).Inc()
	zap.L().Debug("Link created",
		zap.String("id", id),
		zap.String("kind", string(kind)),
		zap.Bool("locked", link.Locked()),
		zap.Duration("ttl", r.TTL(u)),
	)

	return link, nil
}

// Resolve returns the live record for id or ErrGone
func (r *Registry) Resolve(ctx context.Context, id string) (*model.Link, error) {
	if id == "" {
		resolvesTotal.WithLabelValues("gone").Inc()
		return nil, ErrGone
	}

	link, ok, err := r.store.Get(ctx, Key(id))
	if err != nil {
		resolvesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to look up link, %w", err)
	}

	if !ok {
		resolvesTotal.WithLabelValues("gone").Inc()
		return nil, ErrGone
	}

	resolvesTotal.WithLabelValues("found").Inc()
	return &link, nil
}

// IsAdmin reports whether id is the configured administrator
func (r *Registry) IsAdmin(id int64) bool {
	return r.adminID != nil && *r.adminID == id
}

// Revoke deletes the link if requester owns it or is the administrator.
// Revoking a missing link succeeds.
func (r *Registry) Revoke(ctx context.Context, id string, requester int64) error {
	link, ok, err := r.store.Get(ctx, Key(id))
	if err != nil {
		revocationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to look up link, %w", err)
	}

	if !ok {
		revocationsTotal.WithLabelValues("missing").Inc()
		return nil
	}

	if !link.OwnedBy(requester) && !r.IsAdmin(requester) {
		revocationsTotal.WithLabelValues("forbidden").Inc()
		return ErrForbidden
	}

	if err := r.store.Del(ctx, Key(id)); err != nil {
		revocationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to delete link, %w", err)
	}

	revocationsTotal.WithLabelValues("revoked").Inc()
	zap.L().Debug("Link revoked", zap.String("id", id), zap.Int64("by", requester))

	return nil
}
