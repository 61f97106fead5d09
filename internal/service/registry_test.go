package service

import (
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/internal/store"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newMemoryRegistry(t *testing.T, admin *int64) *Registry {
	t.Helper()

	s := store.NewMemory[model.Link](time.Minute)
	t.Cleanup(func() { s.Close() })

	return NewRegistry(s, RegistryOpts{DefaultTTL: time.Hour, AdminID: admin})
}

func newRedisRegistry(t *testing.T) (*miniredis.Miniredis, *Registry) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return mr, NewRegistry(store.NewRedis[model.Link](rdb), RegistryOpts{DefaultTTL: time.Hour})
}

func upload() model.Upload {
	return model.Upload{
		ObjectRef:   "BQACAgIAAxkBAAIB",
		DisplayName: "holiday.mp4",
		OwnerID:     ptr[int64](42),
		Kind:        model.KindVideo,
		Size:        1 << 20,
	}
}

func TestCreateThenResolve(t *testing.T) {
	ctx := context.Background()

	registries := map[string]*Registry{
		"memory": newMemoryRegistry(t, nil),
	}
	_, registries["redis"] = newRedisRegistry(t)

	for name, r := range registries {
		t.Run(name, func(t *testing.T) {
			u := upload()
			u.Password = ptr("secret")

			created, err := r.CreateLink(ctx, u)
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, model.KindVideo, created.Kind)

			got, err := r.Resolve(ctx, created.ID)
			require.NoError(t, err)

			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.ObjectRef, got.ObjectRef)
			assert.Equal(t, created.DisplayName, got.DisplayName)
			assert.Equal(t, created.OwnerID, got.OwnerID)
			assert.Equal(t, created.Password, got.Password)
			assert.Equal(t, created.Kind, got.Kind)
			assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestCreateLinkDefaults(t *testing.T) {
	r := newMemoryRegistry(t, nil)

	u := upload()
	u.Kind = ""
	u.Password = ptr("")

	l, err := r.CreateLink(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, model.KindFile, l.Kind)
	assert.Nil(t, l.Password)
	assert.False(t, l.Locked())
	assert.Equal(t, time.Hour, r.TTL(u))

	u.TTL = time.Minute
	assert.Equal(t, time.Minute, r.TTL(u))
}

func TestCreateLinkRequiresObjectRef(t *testing.T) {
	r := newMemoryRegistry(t, nil)

	_, err := r.CreateLink(context.Background(), model.Upload{DisplayName: "x"})
	assert.ErrorIs(t, err, ErrNoObjectRef)
}

func TestResolveUnknownIsGone(t *testing.T) {
	r := newMemoryRegistry(t, nil)

	_, err := r.Resolve(context.Background(), "doesnotexist")
	assert.ErrorIs(t, err, ErrGone)

	_, err = r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrGone)
}

func TestLinkExpiresMemory(t *testing.T) {
	ctx := context.Background()
	r := newMemoryRegistry(t, nil)

	u := upload()
	u.TTL = time.Second

	l, err := r.CreateLink(ctx, u)
	require.NoError(t, err)

	_, err = r.Resolve(ctx, l.ID)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	_, err = r.Resolve(ctx, l.ID)
	assert.ErrorIs(t, err, ErrGone)
}

func TestLinkExpiresRedis(t *testing.T) {
	ctx := context.Background()
	mr, r := newRedisRegistry(t)

	u := upload()
	u.TTL = time.Second

	l, err := r.CreateLink(ctx, u)
	require.NoError(t, err)

	_, err = r.Resolve(ctx, l.ID)
	require.NoError(t, err)

	mr.FastForward(1100 * time.Millisecond)

	_, err = r.Resolve(ctx, l.ID)
	assert.ErrorIs(t, err, ErrGone)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		admin     *int64
		requester int64
		wantErr   error
		gone      bool
	}{
		{name: "owner without admin configured", requester: 42, gone: true},
		{name: "admin", admin: ptr[int64](7), requester: 7, gone: true},
		{name: "third party", admin: ptr[int64](7), requester: 99, wantErr: ErrForbidden},
		{name: "third party without admin configured", requester: 99, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMemoryRegistry(t, tt.admin)

			l, err := r.CreateLink(ctx, upload())
			require.NoError(t, err)

			err = r.Revoke(ctx, l.ID, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			_, err = r.Resolve(ctx, l.ID)
			if tt.gone {
				assert.ErrorIs(t, err, ErrGone)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newMemoryRegistry(t, nil)

	l, err := r.CreateLink(ctx, upload())
	require.NoError(t, err)

	require.NoError(t, r.Revoke(ctx, l.ID, 42))
	require.NoError(t, r.Revoke(ctx, l.ID, 42))

	// Anyone may "revoke" something that isn't there
	assert.NoError(t, r.Revoke(ctx, "nothere", 1234))
}

func TestRevokeLinkWithoutOwner(t *testing.T) {
	ctx := context.Background()
	r := newMemoryRegistry(t, ptr[int64](7))

	u := upload()
	u.OwnerID = nil

	l, err := r.CreateLink(ctx, u)
	require.NoError(t, err)

	assert.ErrorIs(t, r.Revoke(ctx, l.ID, 0), ErrForbidden)
	assert.NoError(t, r.Revoke(ctx, l.ID, 7))
}

type failingStore struct {
	store.Store[model.Link]
}

var errBackend = errors.New("connection refused")

func (failingStore) Set(context.Context, string, model.Link, time.Duration) error { return errBackend }
func (failingStore) Get(context.Context, string) (model.Link, bool, error) {
	return model.Link{}, false, errBackend
}

func TestBackendErrorsAreNotGone(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(failingStore{}, RegistryOpts{DefaultTTL: time.Hour})

	_, err := r.CreateLink(ctx, upload())
	assert.ErrorIs(t, err, errBackend)

	_, err = r.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, errBackend)
	assert.NotErrorIs(t, err, ErrGone)

	err = r.Revoke(ctx, "abc", 42)
	assert.ErrorIs(t, err, errBackend)
}
