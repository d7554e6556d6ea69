package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout(), "el timeout por llamada debe ser 15 s")
	assert.True(t, cfg.Session.CheckExpiry)
	assert.Equal(t, "/login", cfg.Session.LoginPath)
	assert.Equal(t, "invorya_sid", cfg.Session.CookieName)
	assert.False(t, cfg.Session.SecureCookie)
}

func TestFromViper_EnvComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SESSION_CHECK_EXPIRY", "false")
	v.Set("STORAGE_DRIVER", "REDIS")
	v.Set("BACKEND_BASE_URL", "https://api.example.com/api/")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Session.CheckExpiry)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "https://api.example.com/api", cfg.Backend.BaseURL, "se recorta la barra final")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "admin", Password: "p@ss:word", DBName: "panel", SSLMode: "disable"}
	assert.Equal(t, "postgres://admin:p%40ss%3Aword@db:5432/panel?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
