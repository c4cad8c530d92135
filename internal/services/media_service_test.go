package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

func TestUploadSizeLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exact := make([]byte, 10*1024*1024)
	asset, err := env.media.Upload(ctx, models.MediaSourceUpload, "exact.bin", "application/zip", exact)
	require.NoError(t, err)
	assert.Equal(t, int64(len(exact)), asset.Size)

	over := make([]byte, 10*1024*1024+1)
	_, err = env.media.Upload(ctx, models.MediaSourceUpload, "over.bin", "application/zip", over)
	assert.ErrorIs(t, err, apperrors.ErrSizeExceeded)
	assert.Equal(t, 1, env.blobs.Len())
}

func TestUploadDetectsContentType(t *testing.T) {
	env := newTestEnv(t)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	asset, err := env.media.Upload(context.Background(), models.MediaSourceCMS, "../../logo.png", "application/octet-stream", png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, "logo.png", asset.Filename)
	assert.Equal(t, "/api/media/"+asset.ID, asset.URL)
}

func TestMediaGetWithData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset, err := env.media.Upload(ctx, models.MediaSourceCMS, "a.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)

	got, err := env.media.Get(ctx, asset.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Data)

	list, err := env.media.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Data)
	assert.Equal(t, models.MediaURL(asset.ID), list[0].URL)
}

func TestMediaDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.media.Delete(ctx, "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	keep, err := env.media.Upload(ctx, models.MediaSourceCMS, "keep.txt", "text/plain", []byte("keep"))
	require.NoError(t, err)
	gone, err := env.media.Upload(ctx, models.MediaSourceCMS, "gone.txt", "text/plain", bytes.Repeat([]byte("x"), 3))
	require.NoError(t, err)

	require.NoError(t, env.media.Delete(ctx, gone.ID))

	list, err := env.media.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.Equal(t, 1, env.blobs.Len())

	exists, err := env.media.Exists(ctx, gone.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
