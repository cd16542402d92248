package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(S3Config{Region: "us-east-1"})
	assert.Error(t, err)

	s, err := NewS3Store(S3Config{Bucket: "covers", Region: "us-east-1", Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "covers", s.bucket)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "covers/1.webp", "image/webp", []byte{1, 2, 3}))

	obj, ok := s.Get("covers/1.webp")
	require.True(t, ok)
	assert.Equal(t, "image/webp", obj.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, obj.Body)

	url, err := s.URL(ctx, "covers/1.webp")
	require.NoError(t, err)
	assert.Equal(t, "memory://covers/1.webp", url)
}
