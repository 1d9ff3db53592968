package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"

	"cadastre/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	storage := NewBlobStorage(memblob.OpenBucket(nil))
	defer storage.Close()

	key := "properties/abc/photo"
	content := []byte("\x89PNG fake image bytes")

	photo, err := storage.Put(ctx, key, "image/png", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, key, photo.Key)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, int64(len(content)), photo.Size)
	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), photo.Checksum)

	reader, info, err := storage.Open(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, content, got)
	assert.Equal(t, "image/png", info.ContentType)

	replacement := []byte("jpeg bytes")
	_, err = storage.Put(ctx, key, "image/jpeg", bytes.NewReader(replacement))
	require.NoError(t, err)
	reader, info, err = storage.Open(ctx, key)
	require.NoError(t, err)
	got, _ = io.ReadAll(reader)
	reader.Close()
	assert.Equal(t, replacement, got)
	assert.Equal(t, "image/jpeg", info.ContentType)

	require.NoError(t, storage.Delete(ctx, key))

	_, _, err = storage.Open(ctx, key)
	assert.True(t, errors.Is(err, service.ErrPhotoNotFound))
	assert.True(t, errors.Is(storage.Delete(ctx, key), service.ErrPhotoNotFound))
}

func TestOpen_ByURL(t *testing.T) {
	storage, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	require.NoError(t, storage.Close())

	_, err = Open(context.Background(), "nosuchscheme://bucket")
	assert.Error(t, err)
}
