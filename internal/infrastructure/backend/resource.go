package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Rutas de los recursos en la API de inventario.
const (
	PathProductos   = "/productos"
	PathCategorias  = "/categorias"
	PathProveedores = "/proveedores"
	PathUbicaciones = "/ubicaciones"
	PathEntradas    = "/entradas"
	PathSalidas     = "/salidas"
	PathTraslados   = "/traslados"
	PathUsuarios    = "/usuarios"
	PathAuditoria   = "/auditoria"
)

// Resource es un recurso REST genérico (GET lista, GET/PUT/DELETE por id, POST).
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource construye el recurso sobre la ruta base.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// List devuelve todos los elementos; el filtrado se hace del lado del panel.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var raw json.RawMessage
	if err := r.c.Do(ctx, http.MethodGet, r.path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// GetByID devuelve el elemento o nil si el backend responde 404.
func (r *Resource[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodGet, escape(r.path, id), nil, nil, &out); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// Create hace POST y devuelve lo que el backend persistió.
func (r *Resource[T]) Create(ctx context.Context, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update hace PUT sobre el id.
func (r *Resource[T]) Update(ctx context.Context, id string, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPut, escape(r.path, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete hace DELETE sobre el id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, escape(r.path, id), nil, nil, nil)
}

// decodeList acepta un arreglo plano o un sobre {"items": [...]} / {"data": [...]}.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '{' {
		var env struct {
			Items json.RawMessage `json:"items"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("backend: deserializar lista: %w", err)
		}
		switch {
		case len(env.Items) > 0:
			trimmed = env.Items
		case len(env.Data) > 0:
			trimmed = env.Data
		default:
			return []T{}, nil
		}
	}
	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("backend: deserializar lista: %w", err)
	}
	return out, nil
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
