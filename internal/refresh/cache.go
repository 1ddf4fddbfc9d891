package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "dashboard:snapshot"

// ErrNoSnapshot is returned when no snapshot has been stored yet.
var ErrNoSnapshot = errors.New("no snapshot cached")

// Cache persists the serialized dashboard snapshot.
type Cache interface {
	Put(ctx context.Context, encoded []byte, ttl time.Duration) error
	Fetch(ctx context.Context) ([]byte, error)
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache stores the snapshot in redis alongside the session hashes.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (r *redisCache) Put(ctx context.Context, encoded []byte, ttl time.Duration) error {
	return r.client.Set(ctx, snapshotKey, encoded, ttl).Err()
}

func (r *redisCache) Fetch(ctx context.Context) ([]byte, error) {
	raw, err := r.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	return raw, err
}

// MemoryCache is an in-process cache used by tests.
type MemoryCache struct {
	mu      sync.Mutex
	encoded []byte
}

// NewMemoryCache builds an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (m *MemoryCache) Put(_ context.Context, encoded []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encoded = append([]byte(nil), encoded...)
	return nil
}

func (m *MemoryCache) Fetch(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.encoded == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), m.encoded...), nil
}
