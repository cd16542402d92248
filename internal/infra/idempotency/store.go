// Package idempotency remembers which requests and provider notifications
// were already handled.
package idempotency

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	reservedMarker = "in_progress"
	resultPrefix   = "result:"
)

// Store is a TTL keyed set of claims, each optionally holding a result.
type Store interface {
	// Reserve claims key. It reports false when someone already holds it.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops a claim so the work can be retried.
	Release(ctx context.Context, key string) error
	// SaveResult stores the outcome for a claimed key.
	SaveResult(ctx context.Context, key string, result []byte, ttl time.Duration) error
	// Result returns the stored outcome, if any.
	Result(ctx context.Context, key string) ([]byte, bool, error)
}

// ======================================================
// Redis
// ======================================================

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.key(key), reservedMarker, ttl).Result()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) SaveResult(ctx context.Context, key string, result []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), resultPrefix+string(result), ttl).Err()
}

func (s *RedisStore) Result(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(val) < len(resultPrefix) || val[:len(resultPrefix)] != resultPrefix {
		return nil, false, nil
	}
	return []byte(val[len(resultPrefix):]), true, nil
}

// ======================================================
// Memory
// ======================================================

type entry struct {
	result    []byte
	hasResult bool
	expires   time.Time
}

// MemoryStore is used when no redis is configured. Claims are per process.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, entries: map[string]entry{}}
}

func (s *MemoryStore) live(key string) (entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, true
}

func (s *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.entries[key] = entry{expires: s.expiry(ttl)}
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) SaveResult(_ context.Context, key string, result []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{result: result, hasResult: true, expires: s.expiry(ttl)}
	return nil
}

func (s *MemoryStore) Result(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok || !e.hasResult {
		return nil, false, nil
	}
	return e.result, true, nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
