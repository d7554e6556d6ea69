package http

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// AuthHandler login, logout y estado de la sesión.
type AuthHandler struct {
	sessions *auth.SessionManager
	log      *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(sessions *auth.SessionManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	st, err := h.sessions.Login(c.UserContext(), GetNamespace(c), in.Email, in.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toSessionResponse(st))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Avisa al backend y borra token, usuario, expiración y permisos. Los presets del reporte se conservan.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RedirectResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext(), GetNamespace(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.RedirectResponse{Code: "LOGGED_OUT", Message: "Sesión cerrada", Redirect: GetLoginPath(c)})
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(toSessionResponse(GetState(c)))
}

// RefreshPermissions godoc
// @Summary      Recargar permisos
// @Description  Vuelve a consultar la lista de permisos del usuario (p. ej. después de que un admin los cambió).
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/permissions/refresh [post]
func (h *AuthHandler) RefreshPermissions(c *fiber.Ctx) error {
	ns := GetNamespace(c)
	if _, err := h.sessions.LoadPermissions(c.UserContext(), ns); err != nil {
		return respondError(c, h.log, err)
	}
	st, err := h.sessions.Hydrate(c.UserContext(), ns)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toSessionResponse(st))
}

func toSessionResponse(st auth.State) dto.SessionResponse {
	out := dto.SessionResponse{Loading: st.Loading, ExpiresAt: st.ExpiresAt, Permissions: []string{}, Modules: map[string]permission.Capabilities{}}
	if st.Session == nil {
		return out
	}
	s := st.Session
	r := permission.For(s)
	out.User = dto.UserInfo{ID: s.UserID, Name: s.DisplayName, Email: s.Email, Role: s.Role, LocationID: s.AssignedLocationID}
	out.IsAdmin = r.IsAdmin()
	for p := range s.Permissions {
		out.Permissions = append(out.Permissions, p)
	}
	sort.Strings(out.Permissions)
	for _, m := range permission.AllModules {
		out.Modules[m] = r.Capabilities(m)
	}
	return out
}
