package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/inventory"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// InventoryHandler vistas de entradas, salidas y traslados.
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	transfers *inventory.TransferUseCase
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, transfers *inventory.TransferUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{movements: movements, transfers: transfers, log: log}
}

// ListEntries godoc
// @Summary      Listar entradas
// @Tags         entradas
// @Produce      json
// @Param        desde      query  string  false  "Fecha inicial (2006-01-02 o RFC3339)"
// @Param        hasta      query  string  false  "Fecha final (inclusive)"
// @Param        producto   query  string  false  "ID de producto"
// @Param        ubicacion  query  string  false  "ID de ubicación (con ubicación asignada solo se admite la propia)"
// @Success      200  {object}  dto.ListResponse[entity.Entry]
// @Router       /api/entradas [get]
func (h *InventoryHandler) ListEntries(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.movements.ListEntries(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateEntry godoc
// @Summary      Registrar entrada
// @Tags         entradas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Entrada"
// @Success      201   {object}  dto.EntryResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/entradas [post]
func (h *InventoryHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateEntry(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExits godoc
// @Summary      Listar salidas
// @Tags         salidas
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Exit]
// @Router       /api/salidas [get]
func (h *InventoryHandler) ListExits(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.movements.ListExits(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateExit godoc
// @Summary      Registrar salida
// @Description  La cantidad no puede superar el stock del producto en la ubicación. total = cantidad × precio unitario.
// @Tags         salidas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExitRequest  true  "Salida"
// @Success      201   {object}  entity.Exit
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salidas [post]
func (h *InventoryHandler) CreateExit(c *fiber.Ctx) error {
	var in dto.CreateExitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateExit(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransfers godoc
// @Summary      Listar traslados
// @Tags         traslados
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Transfer]
// @Router       /api/traslados [get]
func (h *InventoryHandler) ListTransfers(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.transfers.List(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateTransfer godoc
// @Summary      Crear traslado
// @Tags         traslados
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  entity.Transfer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/traslados [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.transfers.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CancelTransfer godoc
// @Summary      Cancelar traslado
// @Tags         traslados
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  entity.Transfer
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traslados/{id}/cancelar [post]
func (h *InventoryHandler) CancelTransfer(c *fiber.Ctx) error {
	out, err := h.transfers.Cancel(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
