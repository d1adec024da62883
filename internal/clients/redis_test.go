package clients

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(RedisConfig{Addr: mr.Addr(), Timeout: time.Second, Prefix: "test_"})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, mr
}

func TestRedisClient_SetGetWithPrefix(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "exports:1", "payload", time.Minute))

	got, err := c.Get(ctx, "exports:1")
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.True(t, mr.Exists("test_exports:1"))
	assert.Equal(t, time.Minute, mr.TTL("test_exports:1"))
}

func TestRedisClient_GetMiss(t *testing.T) {
	c, _ := newTestRedis(t)

	_, err := c.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClient_Sets(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.SAdd(ctx, "ids", "a", "b"))
	require.NoError(t, c.SRem(ctx, "ids", "a"))

	members, err := c.SMembers(ctx, "ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(RedisConfig{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})

	assert.Error(t, err)
}
