package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// AuditHandler bitácora de auditoría.
type AuditHandler struct {
	uc  *usecase.AuditUseCase
	log *logger.Logger
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase, log *logger.Logger) *AuditHandler {
	return &AuditHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Bitácora
// @Tags         auditoria
// @Produce      json
// @Param        modulo   query  string  false  "Módulo"
// @Param        usuario  query  string  false  "ID de usuario"
// @Param        accion   query  string  false  "Acción"
// @Param        desde    query  string  false  "Inicio"
// @Param        hasta    query  string  false  "Fin (inclusive)"
// @Success      200  {object}  dto.ListResponse[entity.AuditRecord]
// @Router       /api/auditoria [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	f := dto.AuditFilter{Module: c.Query("modulo"), UserID: c.Query("usuario"), Action: c.Query("accion"), From: from, To: to}
	out, err := h.uc.List(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
