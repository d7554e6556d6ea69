package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/backend"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío usa el mensaje del error
}

// El orden importa: ErrSessionExpired antes que ErrUnauthorized.
var errorMappings = []errorMapping{
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_REQUIRED", "Su sesión expiró, inicie sesión nuevamente"},
	{domain.ErrNoSession, fiber.StatusUnauthorized, "SESSION_REQUIRED", "Inicie sesión para continuar"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
	{domain.ErrSessionLoading, fiber.StatusAccepted, "LOADING", "cargando la sesión"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", ""},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", ""},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", ""},
	{domain.ErrTimeout, fiber.StatusGatewayTimeout, "TIMEOUT", "El servidor tardó demasiado en responder, intente de nuevo"},
	{domain.ErrNetwork, fiber.StatusBadGateway, "BACKEND_UNREACHABLE", "No se pudo conectar con el servidor"},
	{domain.ErrBackend, fiber.StatusBadGateway, "BACKEND_ERROR", ""},
}

// respondError traduce un error de caso de uso o del backend a la respuesta HTTP.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = userMessage(err, m.target)
		}
		if m.status == fiber.StatusUnauthorized && m.code == "SESSION_REQUIRED" {
			return c.Status(m.status).JSON(dto.RedirectResponse{Code: m.code, Message: msg, Redirect: GetLoginPath(c)})
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("fallo del backend")
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Ocurrió un error inesperado"})
}

// userMessage prefiere el mensaje normalizado del backend; si no, quita el sufijo del sentinel.
func userMessage(err, sentinel error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" {
		return sentinel.Error()
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " no encontrado"})
}
