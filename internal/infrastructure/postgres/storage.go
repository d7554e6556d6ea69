package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
)

var _ ports.Storage = (*Storage)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS client_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// Storage almacenamiento por cliente sobre PostgreSQL (tabla client_storage).
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage construye el adaptador.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear client_storage: %w", err)
	}
	return nil
}

// Get lee una clave del namespace.
func (s *Storage) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var v string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`,
		namespace, key,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get storage %s: %w", key, err)
	}
	return v, true, nil
}

// Set hace upsert de la clave; la última escritura gana.
func (s *Storage) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("set storage %s: %w", key, err)
	}
	return nil
}

// Remove borra las claves indicadas.
func (s *Storage) Remove(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = ANY($2)`,
		namespace, keys,
	)
	if err != nil {
		return fmt.Errorf("remove storage: %w", err)
	}
	return nil
}

// PurgeIdle borra los namespaces sin escrituras desde hace más de olderThanHours.
func (s *Storage) PurgeIdle(ctx context.Context, olderThanHours int) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM client_storage WHERE namespace IN (
			SELECT namespace FROM client_storage
			GROUP BY namespace
			HAVING max(updated_at) < now() - make_interval(hours => $1)
		)`, olderThanHours)
	if err != nil {
		return 0, fmt.Errorf("purge storage: %w", err)
	}
	return tag.RowsAffected(), nil
}
