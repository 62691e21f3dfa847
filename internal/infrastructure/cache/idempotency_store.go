package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "impex:idem:"

// MemoryIdempotencyStore keeps claimed request keys in process. It suits a
// single instance; use RedisIdempotencyStore when the API is scaled out.
type MemoryIdempotencyStore struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryIdempotencyStore starts a store that sweeps expired keys every
// interval
func NewMemoryIdempotencyStore(interval time.Duration) *MemoryIdempotencyStore {
	s := &MemoryIdempotencyStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop(interval)
	return s
}

// Claim records key for ttl. It reports false when the key is already held.
func (s *MemoryIdempotencyStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Release drops key so the request can be retried
func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryIdempotencyStore) sweepLoop(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, key)
		}
	}
}

// RedisIdempotencyStore claims keys with SET NX so every API instance sees
// the same claims
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a store on an existing client
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

// Claim records key for ttl. It reports false when the key is already held.
func (s *RedisIdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release drops key so the request can be retried
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
