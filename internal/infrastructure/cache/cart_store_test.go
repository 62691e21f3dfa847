package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jeenmata/impex/internal/domain/cart"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
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

func sampleCart(t *testing.T) *cart.Cart {
	t.Helper()
	p := &catalog.Product{Name: "Spider Angle Grinder", Slug: "spider-angle-grinder", Brand: "Spider"}
	p.ID = "prod_002"
	v := catalog.ProductVariant{
		ID:                "var_002_1",
		Size:              "4 inch",
		Packaging:         "Single Unit",
		EstimatedPriceNPR: decimal.NewFromInt(8500),
		StockStatus:       catalog.StockInStock,
	}
	c := cart.New("user_002")
	_, err := c.Add(p, v, 3, "urgent", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func TestCartStores(t *testing.T) {
	_, client := setupTestRedis(t)
	stores := map[string]cart.Store{
		"redis":  NewRedisCartStore(client, time.Hour),
		"memory": NewMemoryCartStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := store.Load(ctx, "user_002")
			require.NoError(t, err)
			assert.True(t, empty.IsEmpty())
			assert.Equal(t, "user_002", empty.UserID)

			require.NoError(t, store.Save(ctx, sampleCart(t)))

			loaded, err := store.Load(ctx, "user_002")
			require.NoError(t, err)
			require.Len(t, loaded.Items, 1)
			assert.Equal(t, 3, loaded.Count())
			assert.Equal(t, "urgent", loaded.Items[0].Note)
			assert.True(t, loaded.Total().Equal(decimal.NewFromInt(25500)))

			loaded.Clear(time.Now())
			other, err := store.Load(ctx, "user_002")
			require.NoError(t, err)
			assert.Len(t, other.Items, 1, "loaded carts are copies")

			require.NoError(t, store.Delete(ctx, "user_002"))
			gone, err := store.Load(ctx, "user_002")
			require.NoError(t, err)
			assert.True(t, gone.IsEmpty())
		})
	}
}

func TestRedisCartStore_TTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)

	require.NoError(t, store.Save(context.Background(), sampleCart(t)))
	assert.Equal(t, time.Hour, mr.TTL("impex:cart:user_002"))

	mr.FastForward(2 * time.Hour)
	c, err := store.Load(context.Background(), "user_002")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestRedisCartStore_CorruptDocument(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, 0)
	require.NoError(t, mr.Set("impex:cart:user_002", "{not json"))

	_, err := store.Load(context.Background(), "user_002")
	assert.ErrorContains(t, err, "unmarshal cart failed")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, _ := setupTestRedis(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()
	mr.Close()

	_, err = NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}

