package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
)

func TestStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(0)

	require.NoError(t, s.Set(ctx, "ns-1", ports.KeyAuthToken, "tok"))
	require.NoError(t, s.Set(ctx, "ns-1", ports.KeyReportFilters, "[]"))

	v, ok, err := s.Get(ctx, "ns-1", ports.KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	_, ok, _ = s.Get(ctx, "ns-2", ports.KeyAuthToken)
	assert.False(t, ok, "los namespaces están aislados")

	require.NoError(t, s.Remove(ctx, "ns-1", ports.SessionKeys...))
	_, ok, _ = s.Get(ctx, "ns-1", ports.KeyAuthToken)
	assert.False(t, ok)
	v, ok, _ = s.Get(ctx, "ns-1", ports.KeyReportFilters)
	assert.True(t, ok, "report-filters sobrevive al borrado de sesión")
	assert.Equal(t, "[]", v)
}

func TestStorage_ExpiraPorInactividad(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewStorage(time.Hour)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "ns", "k", "v"))
	now = now.Add(2 * time.Hour)

	_, ok, _ := s.Get(ctx, "ns", "k")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())
}

func TestStorage_LecturaRenuevaInactividad(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewStorage(time.Hour)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "ns", ports.KeyReportFilters, "[]"))
	for i := 0; i < 3; i++ {
		now = now.Add(45 * time.Minute)
		_, ok, _ := s.Get(ctx, "ns", ports.KeyReportFilters)
		require.True(t, ok, "un cliente que solo lee sigue activo (lectura %d)", i+1)
	}
	assert.Equal(t, 0, s.Sweep())

	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
}

func TestStorage_Concurrente(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "ns", "k", "v")
			_, _, _ = s.Get(ctx, "ns", "k")
			_ = s.Remove(ctx, "ns", "otra")
		}()
	}
	wg.Wait()
	v, ok, _ := s.Get(ctx, "ns", "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
