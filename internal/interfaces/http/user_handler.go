package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// UserHandler administración de usuarios. Todas las rutas son solo para admin.
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.User]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Usuario"
// @Success      201   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  entity.User
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "usuario")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPermissions godoc
// @Summary      Reemplazar permisos de un usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.SetPermissionsRequest  true  "Permisos"
// @Success      200   {object}  dto.SetPermissionsRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/permisos [put]
func (h *UserHandler) SetPermissions(c *fiber.Ctx) error {
	var in dto.SetPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetPermissions(c.UserContext(), c.Params("id"), in.Permissions)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SetPermissionsRequest{Permissions: out})
}
