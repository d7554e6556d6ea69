package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
)

func session(role string, perms ...string) *entity.Session {
	return &entity.Session{UserID: "u-1", DisplayName: "Ana", Role: role, Permissions: entity.NewPermissionSet(perms)}
}

// arbitraryTokens cubre todos los módulos y acciones más un token fuera del catálogo.
func arbitraryTokens() []string {
	tokens := []string{"inexistente.ver", "", "productos"}
	for _, m := range permission.AllModules {
		for _, a := range permission.AllActions {
			tokens = append(tokens, permission.Token(m, a))
		}
	}
	return tokens
}

func TestHasPermission_AdminSiempre(t *testing.T) {
	cases := map[string]*entity.Session{
		"lista vacía":      session("admin"),
		"lista parcial":    session("admin", "productos.ver"),
		"rol en mayúscula": session("ADMIN"),
	}
	for name, s := range cases {
		r := permission.For(s)
		for _, tok := range arbitraryTokens() {
			assert.True(t, r.HasPermission(tok), "%s: admin debe tener %q", name, tok)
		}
	}
}

func TestHasPermission_ComodinNoAdmin(t *testing.T) {
	for _, role := range []string{"empleado", "gerente", "manager"} {
		r := permission.For(session(role, "*"))
		for _, tok := range arbitraryTokens() {
			assert.True(t, r.HasPermission(tok), "rol %s con '*' debe tener %q", role, tok)
		}
	}
}

func TestHasPermission_SinTokenNiComodin(t *testing.T) {
	r := permission.For(session("gerente", "productos.ver", "salidas.crear"))
	for _, tok := range arbitraryTokens() {
		want := tok == "productos.ver" || tok == "salidas.crear"
		assert.Equal(t, want, r.HasPermission(tok), "token %q", tok)
	}
}

func TestHasPermission_SinSesionNiegaTodo(t *testing.T) {
	r := permission.For(nil)
	for _, tok := range arbitraryTokens() {
		assert.False(t, r.HasPermission(tok))
	}
	assert.False(t, r.IsAdmin())
	assert.Equal(t, permission.Capabilities{}, r.Capabilities(permission.ModuleProductos))
}

func TestHasPermission_PermisosSinCargarFallaCerrado(t *testing.T) {
	admin := &entity.Session{UserID: "u-1", Role: "admin"}
	r := permission.For(admin)

	assert.True(t, r.IsAdmin(), "el rol se conoce aunque falten permisos")
	assert.False(t, r.HasPermission("productos.ver"), "sin lista cargada ninguna verificación pasa")
	assert.False(t, r.CanDelete(permission.ModuleUsuarios))
}

func TestEscenario_EmpleadoSoloVerProductos(t *testing.T) {
	r := permission.For(session("empleado", "productos.ver"))

	assert.True(t, r.CanView("productos"))
	assert.False(t, r.CanCreate("productos"))
	assert.False(t, r.CanEdit("productos"))
	assert.False(t, r.CanDelete("productos"))
	assert.False(t, r.IsAdmin())
}

func TestEscenario_AdminSinPermisosEliminaUsuarios(t *testing.T) {
	r := permission.For(session("admin"))
	assert.True(t, r.CanDelete("usuarios"))
}

func TestCapabilities(t *testing.T) {
	r := permission.For(session("gerente", "traslados.ver", "traslados.crear"))
	assert.Equal(t, permission.Capabilities{View: true, Create: true}, r.Capabilities(permission.ModuleTraslados))
}

func TestLocationScope(t *testing.T) {
	admin := session("admin")
	admin.AssignedLocationID = "loc-1"
	assert.Empty(t, permission.For(admin).LocationScope(), "admin ve todas las ubicaciones")

	emp := session("empleado", "salidas.ver")
	emp.AssignedLocationID = "loc-2"
	assert.Equal(t, "loc-2", permission.For(emp).LocationScope())

	assert.Empty(t, permission.For(session("gerente")).LocationScope())
	assert.Empty(t, permission.For(nil).LocationScope())
}
