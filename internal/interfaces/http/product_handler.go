package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/inventory"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP de la vista de productos.
type ProductHandler struct {
	uc            *usecase.ProductUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, replenishment: replenishment, log: log}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por código o nombre"
// @Param        categoria  query  string  false  "ID de categoría"
// @Param        stockBajo  query  bool    false  "Solo productos en o bajo el stock mínimo"
// @Success      200  {object}  dto.ListResponse[dto.ProductView]
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f dto.ProductFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "producto")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Product  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del producto"
// @Param        body  body  entity.Product  true  "Datos a actualizar"
// @Success      200   {object}  entity.Product
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /api/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el stock mínimo con cantidad sugerida, priorizados por ventas de los últimos 90 días.
// @Tags         productos
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReplenishmentSuggestion]
// @Router       /api/productos/reposicion [get]
func (h *ProductHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
