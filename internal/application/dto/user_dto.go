package dto

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"rol"`
	LocationID string `json:"ubicacionId"`
}

// UpdateUserRequest edición parcial de usuario; los campos nil no cambian.
type UpdateUserRequest struct {
	Name       *string `json:"nombre"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *string `json:"rol"`
	LocationID *string `json:"ubicacionId"`
	Active     *bool   `json:"activo"`
}

// SetPermissionsRequest reemplazo de la lista de permisos.
type SetPermissionsRequest struct {
	Permissions []string `json:"permisos"`
}
