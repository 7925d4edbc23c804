// Package session stores per-login checkout state. Each login session is
// identified by the jti claim of its session cookie; the checkout state for
// that session lives out-of-process in Redis so the server stays stateless.
// When Redis is unavailable the application degrades to an in-process store
// rather than failing startup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moviemagic/movie-booking/internal/model"
)

// ErrNotFound is returned when no checkout state exists for a session id.
// Handlers treat it as "rewind to an earlier step", never as a hard error.
var ErrNotFound = errors.New("checkout session not found")

// Store persists checkout state keyed by login session id.
type Store interface {
	Get(ctx context.Context, sid string) (model.CheckoutSession, error)
	Put(ctx context.Context, sid string, cs model.CheckoutSession) error
	Delete(ctx context.Context, sid string) error
}

const redisKeyPrefix = "checkout:"

// RedisStore keeps checkout state as JSON values with a TTL, so abandoned
// checkouts expire on their own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid string) (model.CheckoutSession, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+sid).Bytes()
	if err == redis.Nil {
		return model.CheckoutSession{}, ErrNotFound
	}
	if err != nil {
		return model.CheckoutSession{}, err
	}
	var cs model.CheckoutSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return model.CheckoutSession{}, err
	}
	return cs, nil
}

func (s *RedisStore) Put(ctx context.Context, sid string, cs model.CheckoutSession) error {
	raw, err := json.Marshal(cs)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKeyPrefix+sid, raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+sid).Err()
}

// MemoryStore is a mutex-guarded map used when Redis is unreachable and in
// tests. Entries never expire; the trade-off is acceptable for a dev
// fallback because login sessions themselves expire.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]model.CheckoutSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]model.CheckoutSession)}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.m[sid]
	if !ok {
		return model.CheckoutSession{}, ErrNotFound
	}
	return cs, nil
}

func (s *MemoryStore) Put(_ context.Context, sid string, cs model.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = cs
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}
