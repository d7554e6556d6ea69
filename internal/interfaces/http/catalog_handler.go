package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// CatalogHandler vistas de categorías, proveedores y ubicaciones.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
	locations  *usecase.LocationUseCase
	log        *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, suppliers *usecase.SupplierUseCase, locations *usecase.LocationUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{categories: categories, suppliers: suppliers, locations: locations, log: log}
}

// ── Categorías ───────────────────────────────────────────────────────────────

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Category]
// @Router       /api/categorias [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Category  true  "Categoría"
// @Success      201   {object}  entity.Category
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in entity.Category
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Create(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in entity.Category
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Update(c.UserContext(), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Param        q    query  string  false  "Búsqueda por nombre o NIT"
// @Success      200  {object}  dto.ListResponse[entity.Supplier]
// @Router       /api/proveedores [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.suppliers.List(c.UserContext(), GetSession(c), dto.SupplierFilter{Search: c.Query("q")})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Description  Un NIT, teléfono o correo repetido responde 409 con un mensaje que nombra el campo.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Supplier  true  "Proveedor"
// @Success      201   {object}  entity.Supplier
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in entity.Supplier
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.suppliers.Create(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in entity.Supplier
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.suppliers.Update(c.UserContext(), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.suppliers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         ubicaciones
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Location]
// @Router       /api/ubicaciones [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.locations.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in entity.Location
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.locations.Create(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	var in entity.Location
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.locations.Update(c.UserContext(), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.locations.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
