package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
)

func TestStorage_PersisteEntreInstancias(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.yaml")

	s := NewStorage(path)
	require.NoError(t, s.Set(ctx, "cli", ports.KeyAuthToken, "tok"))
	require.NoError(t, s.Set(ctx, "cli", ports.KeyUserData, `{"id":"u-1","nombre":"Ana","rol":"admin"}`))

	other := NewStorage(path)
	v, ok, err := other.Get(ctx, "cli", ports.KeyUserData)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"u-1","nombre":"Ana","rol":"admin"}`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, other.Remove(ctx, "cli", ports.SessionKeys...))
	_, ok, err = s.Get(ctx, "cli", ports.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_ArchivoInexistente(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "no-existe.yaml"))
	_, ok, err := s.Get(context.Background(), "cli", ports.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Remove(context.Background(), "cli", ports.KeyAuthToken))
}

func TestStorage_YAMLInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: no es yaml :::\n\t-"), 0o600))

	_, _, err := NewStorage(path).Get(context.Background(), "cli", ports.KeyAuthToken)
	assert.Error(t, err)
}
