package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/access"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// Guard envuelve las rutas protegidas: hidrata la sesión, carga permisos pendientes
// y traduce la decisión de access.Evaluate a una respuesta HTTP.
type Guard struct {
	sessions  *auth.SessionManager
	loginPath string
	log       *logger.Logger
	now       func() time.Time
}

// NewGuard construye el guard.
func NewGuard(sessions *auth.SessionManager, loginPath string, log *logger.Logger) *Guard {
	if loginPath == "" {
		loginPath = "/login"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{sessions: sessions, loginPath: loginPath, log: log.Named("guard"), now: time.Now}
}

// Authenticated exige solo una sesión válida.
func (g *Guard) Authenticated() fiber.Handler {
	return g.Require(access.Options{})
}

// Permission exige "<modulo>.<accion>".
func (g *Guard) Permission(module, action string) fiber.Handler {
	return g.Require(access.Options{Permission: permission.Token(module, action)})
}

// AdminOnly exige rol admin.
func (g *Guard) AdminOnly() fiber.Handler {
	return g.Require(access.Options{AdminOnly: true})
}

// Optional adjunta la sesión si es válida y nunca bloquea (p. ej. la página de login).
func (g *Guard) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := g.sessions.Hydrate(c.UserContext(), GetNamespace(c))
		if err == nil {
			if d := access.Evaluate(st, access.Options{}, g.sessions.Expired, g.now()); d.Outcome == access.Allow {
				c.Locals(LocalState, st)
			}
		}
		return c.Next()
	}
}

// Require evalúa la ruta con las opciones dadas.
func (g *Guard) Require(opts access.Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		ns := GetNamespace(c)
		now := g.now()

		st, err := g.sessions.Hydrate(ctx, ns)
		if err != nil {
			return respondError(c, g.log, err)
		}
		if st.Authenticated() && st.Loading && !g.sessions.Expired(st, now) {
			if st, err = g.sessions.EnsurePermissions(ctx, ns, st); err != nil {
				g.log.Warn().Err(err).Str("namespace", ns).Msg("permisos pendientes, se reintenta en la próxima petición")
			}
		}

		d := access.Evaluate(st, opts, g.sessions.Expired, now)
		switch d.Outcome {
		case access.Loading:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusAccepted).JSON(dto.ErrorResponse{Code: "LOADING", Message: "cargando la sesión"})

		case access.Redirect:
			if d.ClearSession {
				if err := g.sessions.Clear(ctx, ns); err != nil {
					g.log.Error().Err(err).Str("namespace", ns).Msg("no se pudo limpiar la sesión vencida")
				}
			}
			if c.Path() == g.loginPath {
				return c.Next()
			}
			g.log.Debug().Str("path", c.Path()).Str("reason", d.Reason).Msg("redirigiendo a login")
			return g.redirect(c)

		case access.Denied:
			g.log.Info().Str("path", c.Path()).Str("user_id", st.Session.UserID).Str("reason", d.Reason).Msg("acceso denegado")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCESS_DENIED",
				Message: "No tiene permisos para acceder a esta sección",
			})
		}

		c.Locals(LocalState, st)
		return c.Next()
	}
}

func (g *Guard) redirect(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
			Code:     "SESSION_REQUIRED",
			Message:  "Inicie sesión para continuar",
			Redirect: g.loginPath,
		})
	}
	return c.Redirect(g.loginPath, fiber.StatusSeeOther)
}

func isAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/") || p == "/api" || strings.HasPrefix(p, "/ws/")
}
