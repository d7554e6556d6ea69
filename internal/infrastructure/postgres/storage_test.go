package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/pkg/config"
)

// Requiere PostgreSQL real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/...
func TestStorage_Postgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	s := NewStorage(pool)
	require.NoError(t, s.EnsureSchema(ctx))
	ns := uuid.NewString()

	require.NoError(t, s.Set(ctx, ns, ports.KeyAuthToken, "uno"))
	require.NoError(t, s.Set(ctx, ns, ports.KeyAuthToken, "dos"))
	require.NoError(t, s.Set(ctx, ns, ports.KeyReportFilters, "[]"))

	v, ok, err := s.Get(ctx, ns, ports.KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dos", v, "la última escritura gana")

	require.NoError(t, s.Remove(ctx, ns, ports.SessionKeys...))
	_, ok, err = s.Get(ctx, ns, ports.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Get(ctx, ns, ports.KeyReportFilters)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, ns, ports.KeyReportFilters))
}
