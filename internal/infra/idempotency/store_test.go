package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "salon:"), mr
}

func TestRedisStore_ReserveOnce(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	ok, err := s.Reserve(ctx, "webhook:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Reserve(ctx, "webhook:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists("salon:webhook:1"))
}

func TestRedisStore_ExpiryAndRelease(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, _ = s.Reserve(ctx, "k", time.Minute)
	mr.FastForward(2 * time.Minute)

	ok, err := s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Release(ctx, "k"))
	ok, _ = s.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestRedisStore_Result(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	_, found, err := s.Result(ctx, "checkout:a")
	require.NoError(t, err)
	assert.False(t, found)

	_, _ = s.Reserve(ctx, "checkout:a", time.Minute)
	_, found, _ = s.Result(ctx, "checkout:a")
	assert.False(t, found)

	require.NoError(t, s.SaveResult(ctx, "checkout:a", []byte(`{"id":1}`), time.Minute))
	got, found, err := s.Result(ctx, "checkout:a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"id":1}`, string(got))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := s.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok)
	ok, _ = s.Reserve(ctx, "k", time.Minute)
	assert.False(t, ok)

	now = now.Add(time.Minute)
	ok, _ = s.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok)

	require.NoError(t, s.SaveResult(ctx, "k", []byte("x"), time.Minute))
	got, found, _ := s.Result(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "x", string(got))
}
