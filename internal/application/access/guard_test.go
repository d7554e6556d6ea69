package access_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invorya-admin/internal/application/access"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/memory"
)

var now = time.Unix(1_700_000_000, 0)

var expired = auth.NewSessionManager(memory.NewStorage(0), nil, auth.Options{CheckExpiry: true}, nil).Expired

func state(role string, perms ...string) auth.State {
	return auth.State{
		Token:   "tok",
		Session: &entity.Session{UserID: "u-1", Role: role, Permissions: entity.NewPermissionSet(perms)},
	}
}

func withExp(st auth.State, exp time.Time) auth.State {
	st.ExpiresAt = &exp
	return st
}

func TestEvaluate_Cargando(t *testing.T) {
	st := auth.State{Token: "tok", Session: &entity.Session{UserID: "u-1", Role: "admin"}, Loading: true}
	d := access.Evaluate(st, access.Options{AdminOnly: true}, expired, now)
	assert.Equal(t, access.Loading, d.Outcome, "mientras cargan los permisos nada pasa, ni siquiera admin")
}

func TestEvaluate_SinSesionRedirige(t *testing.T) {
	for _, opts := range []access.Options{{}, {Permission: "productos.ver"}, {AdminOnly: true}} {
		d := access.Evaluate(auth.State{}, opts, expired, now)
		assert.Equal(t, access.Redirect, d.Outcome)
		assert.True(t, d.ClearSession)
	}
}

func TestEvaluate_VencidaRedirigeAunqueElUsuarioParezcaValido(t *testing.T) {
	st := withExp(state("admin", "*"), now.Add(-10*time.Second))
	d := access.Evaluate(st, access.Options{}, expired, now)
	assert.Equal(t, access.Redirect, d.Outcome)
	assert.True(t, d.ClearSession)

	st.Loading = true
	assert.Equal(t, access.Redirect, access.Evaluate(st, access.Options{}, expired, now).Outcome)
}

func TestEvaluate_ExpiracionEnElLimite(t *testing.T) {
	st := withExp(state("empleado", "productos.ver"), now)
	assert.Equal(t, access.Allow, access.Evaluate(st, access.Options{Permission: "productos.ver"}, expired, now).Outcome)
	assert.Equal(t, access.Allow, access.Evaluate(withExp(st, now.Add(-time.Hour)), access.Options{}, nil, now).Outcome,
		"sin verificador de expiración no se redirige")
}

func TestEvaluate_SoloAdmin(t *testing.T) {
	d := access.Evaluate(state("gerente", "*"), access.Options{AdminOnly: true}, expired, now)
	assert.Equal(t, access.Denied, d.Outcome, "el comodín no convierte en admin")

	d = access.Evaluate(state("admin"), access.Options{AdminOnly: true}, expired, now)
	assert.Equal(t, access.Allow, d.Outcome)
}

func TestEvaluate_Permiso(t *testing.T) {
	cases := []struct {
		name string
		st   auth.State
		want access.Outcome
	}{
		{"token exacto", state("empleado", "productos.ver"), access.Allow},
		{"token faltante", state("empleado", "productos.ver"), access.Denied},
		{"comodín", state("empleado", "*"), access.Allow},
		{"admin sin lista", state("admin"), access.Allow},
	}
	perms := []string{"productos.ver", "productos.eliminar", "productos.eliminar", "usuarios.eliminar"}
	for i, tc := range cases {
		d := access.Evaluate(tc.st, access.Options{Permission: perms[i]}, expired, now)
		assert.Equal(t, tc.want, d.Outcome, tc.name)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loading", access.Loading.String())
	assert.Equal(t, "denied", access.Denied.String())
}
