package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/testutil"
)

func TestRedisCacheRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client, "test:")
	ctx := context.Background()

	t.Run("set get and prefix", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "stats:gen", []byte("abc"), time.Minute))

		got, err := repo.Get(ctx, "stats:gen")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)

		raw, err := client.Get(ctx, "test:stats:gen").Result()
		require.NoError(t, err)
		assert.Equal(t, "abc", raw)

		ttl := client.TTL(ctx, "test:stats:gen").Val()
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)

		ok, err := repo.Exists(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "gone", []byte("x"), 0))

		deleted, err := repo.Delete(ctx, "gone")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("set if not exists", func(t *testing.T) {
		set, err := repo.SetIfNotExists(ctx, "lock", []byte("1"), 0)
		require.NoError(t, err)
		assert.True(t, set)

		set, err = repo.SetIfNotExists(ctx, "lock", []byte("2"), time.Minute)
		require.NoError(t, err)
		assert.False(t, set)

		ok, err := repo.SetTTL(ctx, "lock", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := repo.Get(ctx, "")
		require.ErrorIs(t, err, errEmptyKey)
	})

	assert.NoError(t, repo.Health(ctx))
}
