package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRevocationStore_Token(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisRevocationStore(client)
	ctx := context.Background()

	require.NoError(t, store.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err := store.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsTokenRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.True(t, mr.Exists("impex:revoked:jti:jti-1"))
	mr.FastForward(2 * time.Minute)

	revoked, err = store.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore_ExpiredTokenIsNotStored(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisRevocationStore(client)

	require.NoError(t, store.RevokeToken(context.Background(), "jti-1", 0))
	assert.False(t, mr.Exists("impex:revoked:jti:jti-1"))
}

func TestRedisRevocationStore_User(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisRevocationStore(client)
	revokedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return revokedAt }
	ctx := context.Background()

	revoked, err := store.IsUserRevoked(ctx, "user_002", revokedAt.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, revoked, "no revocation recorded yet")

	require.NoError(t, store.RevokeUser(ctx, "user_002", time.Hour))

	revoked, err = store.IsUserRevoked(ctx, "user_002", revokedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsUserRevoked(ctx, "user_002", revokedAt.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued after the change stay valid")

	revoked, err = store.IsUserRevoked(ctx, "user_001", revokedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore_Unavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisRevocationStore(client)
	mr.Close()

	_, err := store.IsTokenRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestMemoryRevocationStore(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryRevocationStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("token expires with its ttl", func(t *testing.T) {
		require.NoError(t, store.RevokeToken(ctx, "jti-1", time.Minute))

		revoked, err := store.IsTokenRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		now = now.Add(2 * time.Minute)
		revoked, err = store.IsTokenRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("user revocation covers earlier tokens", func(t *testing.T) {
		issued := now.Add(-10 * time.Minute)
		require.NoError(t, store.RevokeUser(ctx, "user_002", time.Hour))

		revoked, err := store.IsUserRevoked(ctx, "user_002", issued)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = store.IsUserRevoked(ctx, "user_002", now.Add(time.Second))
		require.NoError(t, err)
		assert.False(t, revoked)

		now = now.Add(2 * time.Hour)
		revoked, err = store.IsUserRevoked(ctx, "user_002", issued)
		require.NoError(t, err)
		assert.False(t, revoked, "revocation expires")
	})
}
