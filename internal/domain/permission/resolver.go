// Package permission responde preguntas de autorización a partir del rol y la lista plana
// de permisos de la sesión. No hace I/O: todo lo necesario ya está en memoria.
package permission

import (
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// Módulos del panel (primer segmento del token "<modulo>.<accion>").
const (
	ModuleProductos   = "productos"
	ModuleCategorias  = "categorias"
	ModuleProveedores = "proveedores"
	ModuleEntradas    = "entradas"
	ModuleSalidas     = "salidas"
	ModuleTraslados   = "traslados"
	ModuleUbicaciones = "ubicaciones"
	ModuleUsuarios    = "usuarios"
	ModuleReportes    = "reportes"
	ModuleAuditoria   = "auditoria"
)

// Acciones (segundo segmento del token).
const (
	ActionView   = "ver"
	ActionCreate = "crear"
	ActionEdit   = "editar"
	ActionDelete = "eliminar"
)

// AllModules lista todos los módulos conocidos.
var AllModules = []string{
	ModuleProductos, ModuleCategorias, ModuleProveedores, ModuleEntradas, ModuleSalidas,
	ModuleTraslados, ModuleUbicaciones, ModuleUsuarios, ModuleReportes, ModuleAuditoria,
}

// AllActions lista todas las acciones.
var AllActions = []string{ActionView, ActionCreate, ActionEdit, ActionDelete}

// Token arma el permiso "<modulo>.<accion>".
func Token(module, action string) string {
	return module + "." + action
}

// Resolver evalúa permisos sobre una sesión. El valor cero (sin sesión) niega todo.
type Resolver struct {
	session *entity.Session
}

// For construye un resolver para la sesión dada; nil representa "sin sesión".
func For(s *entity.Session) Resolver {
	return Resolver{session: s}
}

// HasPermission responde si la sesión tiene el permiso.
// Orden: sin sesión → false; permisos sin cargar → false; admin → true; "*" → true; pertenencia exacta.
func (r Resolver) HasPermission(token string) bool {
	if r.session == nil || !r.session.PermissionsLoaded() {
		return false
	}
	if r.IsAdmin() {
		return true
	}
	if _, ok := r.session.Permissions[entity.Wildcard]; ok {
		return true
	}
	_, ok := r.session.Permissions[token]
	return ok
}

// Can es el punto único de decisión usado por las vistas.
func (r Resolver) Can(action, module string) bool {
	return r.HasPermission(Token(module, action))
}

func (r Resolver) CanView(module string) bool   { return r.Can(ActionView, module) }
func (r Resolver) CanCreate(module string) bool { return r.Can(ActionCreate, module) }
func (r Resolver) CanEdit(module string) bool   { return r.Can(ActionEdit, module) }
func (r Resolver) CanDelete(module string) bool { return r.Can(ActionDelete, module) }

// IsAdmin es verdadero solo si el rol de la sesión es admin.
func (r Resolver) IsAdmin() bool {
	return r.session != nil && entity.NormalizeRole(r.session.Role) == entity.RoleAdmin
}

// Capabilities agrupa las cuatro acciones de un módulo para que la vista decida qué mostrar.
type Capabilities struct {
	View   bool `json:"can_view"`
	Create bool `json:"can_create"`
	Edit   bool `json:"can_edit"`
	Delete bool `json:"can_delete"`
}

// Capabilities calcula las capacidades de un módulo.
func (r Resolver) Capabilities(module string) Capabilities {
	return Capabilities{
		View:   r.CanView(module),
		Create: r.CanCreate(module),
		Edit:   r.CanEdit(module),
		Delete: r.CanDelete(module),
	}
}

// LocationScope devuelve la ubicación a la que se restringen los datos del usuario.
// Vacío significa sin restricción (admin o usuario sin ubicación asignada).
func (r Resolver) LocationScope() string {
	if r.session == nil || r.IsAdmin() {
		return ""
	}
	return r.session.AssignedLocationID
}
