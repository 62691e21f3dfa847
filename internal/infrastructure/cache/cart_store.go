package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jeenmata/impex/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

const defaultCartTTL = 30 * 24 * time.Hour

// RedisCartStore keeps each dealer's cart as a JSON document in Redis. The
// TTL is refreshed on every save so that active carts never expire.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store on a shared client
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

// Load returns the stored cart or an empty one
func (s *RedisCartStore) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart failed: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	c.UserID = userID
	return &c, nil
}

// Save writes the cart and refreshes its TTL
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(c.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart failed: %w", err)
	}
	return nil
}

// Delete removes the cart
func (s *RedisCartStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart failed: %w", err)
	}
	return nil
}

func cartKey(userID string) string {
	return "impex:cart:" + userID
}

var _ cart.Store = (*RedisCartStore)(nil)

// MemoryCartStore keeps carts in process memory. Carts are lost on restart.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryCartStore creates an empty in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]byte)}
}

// Load returns a copy of the stored cart or an empty one
func (s *MemoryCartStore) Load(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[userID]
	s.mu.RUnlock()
	if !ok {
		return cart.New(userID), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return &c, nil
}

// Save stores a snapshot of the cart
func (s *MemoryCartStore) Save(_ context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	s.mu.Lock()
	s.carts[c.UserID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the cart
func (s *MemoryCartStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	return nil
}

var _ cart.Store = (*MemoryCartStore)(nil)
