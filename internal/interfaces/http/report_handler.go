package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/analytics"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// ReportHandler reporte de ventas y presets de filtros.
type ReportHandler struct {
	sales   *analytics.SalesReportUseCase
	presets *analytics.FilterPresetUseCase
	log     *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(sales *analytics.SalesReportUseCase, presets *analytics.FilterPresetUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{sales: sales, presets: presets, log: log}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Totales, ticket promedio, ranking por ingresos y serie diaria de las salidas tipo venta.
// @Description  Para usuarios con ubicación asignada, sin filtro se usa la suya y otra ubicación responde 403.
// @Tags         reportes
// @Produce      json
// @Param        desde      query  string  false  "Inicio (YYYY-MM-DD o RFC3339)"
// @Param        hasta      query  string  false  "Fin (inclusive)"
// @Param        ubicacion  query  string  false  "ID de ubicación"
// @Param        producto   query  string  false  "ID de producto"
// @Success      200  {object}  dto.SalesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	req := dto.SalesReportRequest{From: from, To: to, LocationID: c.Query("ubicacion"), ProductID: c.Query("producto")}
	out, err := h.sales.Sales(c.UserContext(), GetSession(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListPresets godoc
// @Summary      Presets de filtros guardados
// @Tags         reportes
// @Produce      json
// @Success      200  {array}  entity.ReportFilter
// @Router       /api/reportes/filtros [get]
func (h *ReportHandler) ListPresets(c *fiber.Ctx) error {
	out, err := h.presets.List(c.UserContext(), GetNamespace(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SavePreset godoc
// @Summary      Guardar preset
// @Description  Reemplaza el preset con el mismo nombre.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveFilterRequest  true  "Preset"
// @Success      201   {object}  entity.ReportFilter
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reportes/filtros [post]
func (h *ReportHandler) SavePreset(c *fiber.Ctx) error {
	var in dto.SaveFilterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.presets.Save(c.UserContext(), GetNamespace(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeletePreset godoc
// @Summary      Eliminar preset
// @Tags         reportes
// @Param        name  path  string  true  "Nombre del preset"
// @Success      204
// @Router       /api/reportes/filtros/{name} [delete]
func (h *ReportHandler) DeletePreset(c *fiber.Ctx) error {
	if err := h.presets.Delete(c.UserContext(), GetNamespace(c), c.Params("name")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
