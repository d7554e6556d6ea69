// Package access decide si una ruta protegida se muestra, espera, redirige o niega.
package access

import (
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
)

// Outcome resultado de evaluar una ruta protegida.
type Outcome int

const (
	Allow Outcome = iota
	Loading
	Redirect
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Options requisitos de la ruta. Ambos son opcionales.
type Options struct {
	Permission string
	AdminOnly  bool
}

// Decision resultado del guard. ClearSession indica que hay que borrar las claves de sesión
// antes de redirigir (token vencido).
type Decision struct {
	Outcome      Outcome
	ClearSession bool
	Reason       string
}

// Expiry decide si el estado está vencido a la hora dada.
type Expiry func(st auth.State, now time.Time) bool

// Evaluate aplica, en orden: cargando → sin sesión o vencida → solo admin → permiso → permitir.
// Una sesión vencida nunca está "cargando".
func Evaluate(st auth.State, opts Options, expired Expiry, now time.Time) Decision {
	isExpired := st.Authenticated() && expired != nil && expired(st, now)
	if st.Authenticated() && st.Loading && !isExpired {
		return Decision{Outcome: Loading, Reason: "permisos cargando"}
	}
	if !st.Authenticated() {
		return Decision{Outcome: Redirect, ClearSession: true, Reason: "sin sesión"}
	}
	if isExpired {
		return Decision{Outcome: Redirect, ClearSession: true, Reason: "sesión vencida"}
	}

	r := permission.For(st.Session)
	if opts.AdminOnly && !r.IsAdmin() {
		return Decision{Outcome: Denied, Reason: "solo administradores"}
	}
	if opts.Permission != "" && !r.HasPermission(opts.Permission) {
		return Decision{Outcome: Denied, Reason: "falta el permiso " + opts.Permission}
	}
	return Decision{Outcome: Allow}
}
