package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// LoginResult es lo que devuelve el backend al autenticar.
// ExpiresAt es nil si la respuesta no informa la expiración.
type LoginResult struct {
	Token     string
	ExpiresAt *time.Time
	User      entity.UserSnapshot
}

// AuthRepository define el puerto de autenticación contra la API de inventario.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Permissions devuelve la lista plana de permisos del usuario del token actual.
	Permissions(ctx context.Context) ([]string, error)
	Logout(ctx context.Context) error
}
