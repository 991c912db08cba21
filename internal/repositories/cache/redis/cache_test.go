package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/plantaohub/plantao_backend/internal/repositories/cache/redis"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redisadapter.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redisadapter.NewCache(client)
}

func TestCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	_, cache := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "ranking:current", `[{"rank":1}]`, time.Minute))

	value, err := cache.Get(ctx, "ranking:current")
	require.NoError(t, err)
	assert.Equal(t, `[{"rank":1}]`, value)

	require.NoError(t, cache.Delete(ctx, "ranking:current"))

	value, err = cache.Get(ctx, "ranking:current")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCacheMissIsNotAnError(t *testing.T) {
	ctx := context.Background()
	_, cache := newTestCache(t)

	value, err := cache.Get(ctx, "never-set")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCacheEntriesExpire(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "reports:statistics", "{}", 5*time.Minute))
	mr.FastForward(6 * time.Minute)

	value, err := cache.Get(ctx, "reports:statistics")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := redisadapter.NewClient(context.Background(), "://nope")
	assert.Error(t, err)
}
