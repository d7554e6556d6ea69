package dto

import (
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain/permission"
)

// LoginRequest credenciales del formulario de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo datos del usuario autenticado.
type UserInfo struct {
	ID         string `json:"id"`
	Name       string `json:"nombre"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"rol"`
	LocationID string `json:"ubicacionId,omitempty"`
}

// SessionResponse estado de la sesión que consume la barra lateral y el encabezado.
type SessionResponse struct {
	User        UserInfo                           `json:"user"`
	IsAdmin     bool                               `json:"isAdmin"`
	Loading     bool                               `json:"loading"`
	Permissions []string                           `json:"permisos"`
	ExpiresAt   *time.Time                         `json:"expiresAt,omitempty"`
	Modules     map[string]permission.Capabilities `json:"modulos"`
}
