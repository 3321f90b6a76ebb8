package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/infrastructure/redis"
	"github.com/jhoicas/Garantias-api/pkg/config"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.TokenDenylist) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewTokenDenylist(client)
}

func TestTokenDenylist_RevocaHastaVencer(t *testing.T) {
	mr, d := setup(t)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", 30*time.Minute))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	other, err := d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, other)

	mr.FastForward(31 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_ErrorDeConexion(t *testing.T) {
	mr, d := setup(t)
	mr.Close()

	_, err := d.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	_ = client.Close()

	// Addr no es válido después de Close.
	mr.Close()
	_, err = redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
