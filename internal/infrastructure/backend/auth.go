package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

var _ repository.AuthRepository = (*AuthAPI)(nil)

// AuthAPI adaptador de autenticación sobre la API de inventario.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI construye el adaptador.
func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt *time.Time          `json:"expiresAt"`
	User      entity.UserSnapshot `json:"user"`
}

// Login autentica con email y contraseña.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*repository.LoginResult, error) {
	var out loginResponse
	if err := a.c.Do(ctx, http.MethodPost, LoginPath, nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("backend: login sin token en la respuesta")
	}
	return &repository.LoginResult{Token: out.Token, ExpiresAt: out.ExpiresAt, User: out.User}, nil
}

// Permissions devuelve la lista plana de permisos; acepta [..] o {"permisos": [..]}.
func (a *AuthAPI) Permissions(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := a.c.Do(ctx, http.MethodGet, "/auth/permisos", nil, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []string{}
		}
		return list, nil
	}
	var env struct {
		Permisos []string `json:"permisos"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("backend: deserializar permisos: %w", err)
	}
	if env.Permisos == nil {
		env.Permisos = []string{}
	}
	return env.Permisos, nil
}

// Logout avisa al backend; el panel limpia su almacenamiento aunque esto falle.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
