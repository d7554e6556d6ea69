package entity

// User usuario del panel administrado desde la vista de usuarios.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Email       string   `json:"email"`
	Role        string   `json:"rol"`
	LocationID  string   `json:"ubicacionId,omitempty"`
	Active      bool     `json:"activo"`
	Permissions []string `json:"permisos,omitempty"`
}
