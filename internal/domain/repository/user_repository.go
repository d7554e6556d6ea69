package repository

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// UserPayload son los campos que se envían al crear o editar un usuario.
// Password vacío en edición conserva la contraseña actual.
type UserPayload struct {
	entity.User
	Password string `json:"password,omitempty"`
}

// UserRepository define el puerto de administración de usuarios.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, in *UserPayload) (*entity.User, error)
	Update(ctx context.Context, id string, in *UserPayload) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, id string, permissions []string) error
}
