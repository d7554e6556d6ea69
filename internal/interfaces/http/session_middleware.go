package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/config"
)

// Locals keys en Fiber.
const (
	LocalNamespace = "namespace"
	LocalState     = "session_state"
	LocalRequestID = "request_id"
	LocalLoginPath = "login_path"
)

// SessionMiddleware asigna a cada navegador un namespace de almacenamiento vía cookie
// y lo adjunta al contexto de usuario para que el cliente del backend encuentre el token.
func SessionMiddleware(cfg config.SessionConfig) fiber.Handler {
	name := cfg.CookieName
	if name == "" {
		name = "invorya_sid"
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	return func(c *fiber.Ctx) error {
		ns := c.Cookies(name)
		if _, err := uuid.Parse(ns); err != nil {
			ns = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     name,
				Value:    ns,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cfg.SecureCookie,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalNamespace, ns)
		c.Locals(LocalLoginPath, loginPath)
		c.SetUserContext(ports.WithNamespace(c.UserContext(), ns))
		return c.Next()
	}
}

// GetNamespace devuelve el namespace del cliente (después de SessionMiddleware).
func GetNamespace(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalNamespace).(string)
	return s
}

// GetState devuelve el estado de sesión evaluado por el guard.
func GetState(c *fiber.Ctx) auth.State {
	st, _ := c.Locals(LocalState).(auth.State)
	return st
}

// GetSession devuelve la sesión autenticada o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	return GetState(c).Session
}

// GetLoginPath devuelve la ruta de login configurada.
func GetLoginPath(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalLoginPath).(string); ok && s != "" {
		return s
	}
	return "/login"
}
