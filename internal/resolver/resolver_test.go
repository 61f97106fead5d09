package resolver

import (
	"bitwise74/file-linker/internal/service"
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinker struct {
	url string
	err error
	got string
}

func (f *fakeLinker) GetFileDirectURL(fileID string) (string, error) {
	f.got = fileID
	return f.url, f.err
}

func TestTelegramFetchURL(t *testing.T) {
	f := &fakeLinker{url: "https://api.telegram.org/file/botTOKEN/videos/file_1.mp4"}
	r := &Telegram{api: f}

	u, err := r.FetchURL(context.Background(), "BQACAgIAAxkB", service.FetchOptions{Attachment: true})
	require.NoError(t, err)

	assert.Equal(t, f.url, u)
	assert.Equal(t, "BQACAgIAAxkB", f.got)
}

func TestTelegramFetchURLError(t *testing.T) {
	r := &Telegram{api: &fakeLinker{err: errors.New("Bad Request: wrong file_id")}}

	_, err := r.FetchURL(context.Background(), "nope", service.FetchOptions{})
	assert.Error(t, err)
}

func TestTelegramFetchURLCancelled(t *testing.T) {
	f := &fakeLinker{url: "https://example.com"}
	r := &Telegram{api: f}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.FetchURL(ctx, "x", service.FetchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.got)
}

func TestS3Presign(t *testing.T) {
	ctx := context.Background()
	c := S3Config{
		AccessKey:       "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "media",
		Endpoint:        "http://localhost:9000",
		PresignTTL:      5 * time.Minute,
	}

	client, err := newS3Client(ctx, c)
	require.NoError(t, err)
	r := newS3(client, c)

	raw, err := r.FetchURL(ctx, "videos/abc.mp4", service.FetchOptions{Attachment: true, FileName: "holiday.mp4"})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/media/videos/abc.mp4", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, `attachment; filename=holiday.mp4`, u.Query().Get("response-content-disposition"))

	raw, err = r.FetchURL(ctx, "videos/abc.mp4", service.FetchOptions{})
	require.NoError(t, err)
	assert.NotContains(t, raw, "response-content-disposition")
}
