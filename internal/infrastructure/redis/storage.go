package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/pkg/config"
)

var _ ports.Storage = (*Storage)(nil)

// NewClient crea el cliente de un nodo Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: REDIS_ADDR vacío")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: conectar: %w", err)
	}
	return client, nil
}

// Storage guarda cada namespace como un hash "invorya:ns:<namespace>" con TTL deslizante.
type Storage struct {
	client goredis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewStorage construye el almacenamiento. ttl cero deja los hashes sin expiración.
func NewStorage(client goredis.UniversalClient, ttl time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl, prefix: "invorya:ns:"}
}

func (s *Storage) key(namespace string) string {
	return s.prefix + namespace
}

// Get lee un campo del hash y renueva el TTL del namespace.
func (s *Storage) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	k := s.key(namespace)
	var get *goredis.StringCmd
	_, err := s.client.Pipelined(ctx, func(p goredis.Pipeliner) error {
		get = p.HGet(ctx, k, key)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err == nil || errors.Is(err, goredis.Nil) {
		err = get.Err()
	}
	v := get.Val()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: hget %s: %w", key, err)
	}
	return v, true, nil
}

// Set escribe el campo y renueva el TTL del namespace.
func (s *Storage) Set(ctx context.Context, namespace, key, value string) error {
	k := s.key(namespace)
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, k, key, value)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: hset %s: %w", key, err)
	}
	return nil
}

// Remove borra los campos indicados.
func (s *Storage) Remove(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(namespace), keys...).Err(); err != nil {
		return fmt.Errorf("redis: hdel: %w", err)
	}
	return nil
}
