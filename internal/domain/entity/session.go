package entity

import "strings"

// Roles del panel. El backend puede enviarlos en inglés; NormalizeRole los unifica.
const (
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"
	RoleEmpleado = "empleado"
)

var roleAliases = map[string]string{
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
	"gerente":       RoleGerente,
	"manager":       RoleGerente,
	"empleado":      RoleEmpleado,
	"employee":      RoleEmpleado,
}

// NormalizeRole devuelve el rol canónico; un rol desconocido se conserva en minúsculas.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if canon, ok := roleAliases[r]; ok {
		return canon
	}
	return r
}

// Wildcard concede cualquier permiso.
const Wildcard = "*"

// Session es la identidad del usuario autenticado tal como la conoce el panel.
// Permissions es nil mientras la lista de permisos no se ha cargado.
type Session struct {
	UserID             string
	DisplayName        string
	Email              string
	Role               string
	AssignedLocationID string
	Permissions        map[string]struct{}
}

// PermissionsLoaded indica si la lista de permisos ya está en memoria.
func (s *Session) PermissionsLoaded() bool {
	return s != nil && s.Permissions != nil
}

// HasLocation indica si el usuario está asignado a una ubicación.
func (s *Session) HasLocation() bool {
	return s != nil && s.AssignedLocationID != ""
}

// NewPermissionSet construye el conjunto de permisos; una lista vacía produce un conjunto vacío (no nil).
func NewPermissionSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// UserSnapshot es la forma persistida en la clave user-data.
type UserSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"nombre"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"rol"`
	LocationID string `json:"ubicacionId,omitempty"`
}
