package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/pkg/config"
)

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/redis/...
func TestStorage_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, config.RedisConfig{Addr: addr, PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	s := NewStorage(client, time.Minute)
	ns := uuid.NewString()
	defer client.Del(ctx, s.key(ns))

	require.NoError(t, s.Set(ctx, ns, ports.KeyAuthToken, "tok"))
	require.NoError(t, s.Set(ctx, ns, ports.KeyAuthExp, "1700000000"))

	v, ok, err := s.Get(ctx, ns, ports.KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Remove(ctx, ns, ports.SessionKeys...))
	_, ok, err = s.Get(ctx, ns, ports.KeyAuthExp)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, s.key(ns)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}
