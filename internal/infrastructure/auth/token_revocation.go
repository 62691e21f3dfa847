package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore rejects tokens before they expire: a single token after
// logout, or every token of a user whose role or dealer standing changed.
type RevocationStore interface {
	// RevokeToken rejects the token with the given JWT ID for ttl
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	// IsTokenRevoked reports whether the JWT ID was revoked
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeUser rejects every token issued to the user up to now
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	// IsUserRevoked reports whether a token issued at issuedAt predates the
	// user's last revocation
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const revocationKeyPrefix = "impex:revoked:"

// RedisRevocationStore keeps revocations in Redis so that every instance
// sees them
type RedisRevocationStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisRevocationStore creates a revocation store on a shared client
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{
		client:    client,
		keyPrefix: revocationKeyPrefix,
		now:       time.Now,
	}
}

func (s *RedisRevocationStore) tokenKey(jti string) string {
	return s.keyPrefix + "jti:" + jti
}

func (s *RedisRevocationStore) userKey(userID string) string {
	return s.keyPrefix + "user:" + userID
}

// RevokeToken stores the JWT ID until the token would have expired anyway
func (s *RedisRevocationStore) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.tokenKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks the JWT ID
func (s *RedisRevocationStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeUser stores the revocation time in unix seconds
func (s *RedisRevocationStore) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	at := s.now().Unix()
	if err := s.client.Set(ctx, s.userKey(userID), at, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked compares the token's issue time with the stored revocation time
func (s *RedisRevocationStore) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := s.client.Get(ctx, s.userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user revocation: %w", err)
	}
	at, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation time %q: %w", raw, err)
	}
	return issuedAt.Unix() <= at, nil
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// MemoryRevocationStore keeps revocations in process memory. It is used
// when Redis is disabled and in tests.
type MemoryRevocationStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	users  map[string]revocation
	now    func() time.Time
}

type revocation struct {
	at        int64
	expiresAt time.Time
}

// NewMemoryRevocationStore creates an empty in-memory revocation store
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		tokens: make(map[string]time.Time),
		users:  make(map[string]revocation),
		now:    time.Now,
	}
}

// RevokeToken records the JWT ID with an expiry
func (s *MemoryRevocationStore) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = s.now().Add(ttl)
	return nil
}

// IsTokenRevoked checks the JWT ID, dropping expired entries
func (s *MemoryRevocationStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.tokens[jti]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser records the revocation time for the user
func (s *MemoryRevocationStore) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.users[userID] = revocation{at: now.Unix(), expiresAt: now.Add(ttl)}
	return nil
}

// IsUserRevoked compares issue time and revocation time in unix seconds
func (s *MemoryRevocationStore) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(r.expiresAt) {
		delete(s.users, userID)
		return false, nil
	}
	return issuedAt.Unix() <= r.at, nil
}

var _ RevocationStore = (*MemoryRevocationStore)(nil)
