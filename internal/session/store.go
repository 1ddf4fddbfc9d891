package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/config"
)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Store persists sessions.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects a redis-backed session store.
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (Store, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &redisStore{client: client, ttl: ttl}, client
}

func (r *redisStore) Create(ctx context.Context) (*Session, error) {
	s := New(uuid.NewString())
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	values, err := r.client.HGetAll(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}
	return &Session{ID: id, Values: values}, nil
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	key := redisKeyPrefix + s.ID
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(s.Values) > 0 {
		fields := make(map[string]any, len(s.Values))
		for k, v := range s.Values {
			fields[k] = v
		}
		pipe.HSet(ctx, key, fields)
	} else {
		// An empty hash would expire immediately in redis; keep a marker
		// so the session stays resolvable until logout.
		pipe.HSet(ctx, key, "_", "")
	}
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}

// MemoryStore is an in-process store used by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (m *MemoryStore) Create(_ context.Context) (*Session, error) {
	s := New(uuid.NewString())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = map[string]string{}
	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Session{ID: id, Values: copied}, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		copied[k] = v
	}
	m.sessions[s.ID] = copied
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
