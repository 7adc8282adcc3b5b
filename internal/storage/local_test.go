package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestLocalStorage_PutGet(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	err := s.Put(ctx, "evidence/EXT-1/photo.jpg", strings.NewReader("fake jpeg bytes"), PutOptions{})
	require.NoError(t, err)

	rc, info, err := s.Get(ctx, "evidence/EXT-1/photo.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "fake jpeg bytes", string(data))
	assert.Equal(t, int64(15), info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)
}

func TestLocalStorage_NoOverwrite(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a/b.txt", strings.NewReader("one"), PutOptions{}))

	err := s.Put(ctx, "a/b.txt", strings.NewReader("two"), PutOptions{})
	assert.ErrorIs(t, err, ErrKeyExists)

	require.NoError(t, s.Put(ctx, "a/b.txt", strings.NewReader("two"), PutOptions{Overwrite: true}))
}

func TestLocalStorage_MaxSize(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	err := s.Put(ctx, "big.bin", strings.NewReader("0123456789"), PutOptions{MaxSize: 4})
	assert.ErrorIs(t, err, ErrTooLarge)

	// The oversized write leaves nothing behind.
	exists, err := s.Exists(ctx, "big.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_PathTraversal(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", "../secrets", "a/../../b"} {
		err := s.Put(ctx, key, strings.NewReader("x"), PutOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestLocalStorage_GetMissing(t *testing.T) {
	s := newTestLocalStorage(t)

	_, _, err := s.Get(context.Background(), "nope.jpg")
	assert.True(t, IsNotFound(err))
}

func TestLocalStorage_DeleteIdempotent(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "x.txt", strings.NewReader("x"), PutOptions{}))
	require.NoError(t, s.Delete(ctx, "x.txt"))
	require.NoError(t, s.Delete(ctx, "x.txt"))
}

func TestLocalStorage_URL(t *testing.T) {
	s := newTestLocalStorage(t)

	url, err := s.URL(context.Background(), "evidence/EXT-1/p.jpg", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/evidence/EXT-1/p.jpg", url)
}

func TestEvidenceKeyHelpers(t *testing.T) {
	key := EvidenceKey("EXT-1", "photo.JPG")
	assert.True(t, strings.HasPrefix(key, "evidence/EXT-1/"))
	assert.True(t, strings.HasSuffix(key, ".JPG"))

	thumb := ThumbnailKey("evidence/EXT-1/abc.jpg")
	assert.Equal(t, "thumbnails/EXT-1/abc.jpg", thumb)
}

func TestIsAllowedImageType(t *testing.T) {
	assert.True(t, IsAllowedImageType("image/jpeg"))
	assert.True(t, IsAllowedImageType("IMAGE/PNG; charset=binary"))
	assert.False(t, IsAllowedImageType("application/pdf"))
	assert.False(t, IsAllowedImageType(""))
}
