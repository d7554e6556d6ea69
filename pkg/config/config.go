package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Storage StorageConfig
	Redis   RedisConfig
	DB      DBConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	DocsPath string // ruta al swagger.json; vacío desactiva /docs
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig apunta a la API REST de inventario que consume el panel.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el tiempo máximo por llamada; 15 s si no está configurado.
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Drivers de almacenamiento de sesión soportados.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// StorageConfig elige dónde vive el almacenamiento por cliente (token, usuario, permisos, filtros).
type StorageConfig struct {
	Driver string
}

// RedisConfig configuración de Redis para el driver "redis".
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// DBConfig configuración de PostgreSQL para el driver "postgres".
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// SessionConfig controla la cookie de cliente y la verificación local de expiración.
type SessionConfig struct {
	CookieName   string
	CheckExpiry  bool // compara auth-exp con el reloj local antes de cada ruta protegida
	NamespaceTTL time.Duration
	LoginPath    string
	SecureCookie bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "invorya-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsPath: getString(v, "DOCS_PATH", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8081),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", StorageMemory)),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			PoolSize: getInt(v, "REDIS_POOL_SIZE", 10),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "invorya_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "invorya_sid"),
			CheckExpiry:  getBool(v, "SESSION_CHECK_EXPIRY", true),
			NamespaceTTL: time.Duration(getInt(v, "SESSION_NAMESPACE_TTL_HOURS", 24)) * time.Hour,
			LoginPath:    getString(v, "SESSION_LOGIN_PATH", "/login"),
			SecureCookie: getBool(v, "SESSION_SECURE_COOKIE", env == "production"),
		},
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_BASE_URL es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	switch raw := v.Get(key).(type) {
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return def
		}
		return b
	default:
		return v.GetBool(key)
	}
}
