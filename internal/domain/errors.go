package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Sesión del panel.
	ErrNoSession      = errors.New("no hay sesión activa")
	ErrSessionExpired = errors.New("la sesión expiró")
	ErrSessionLoading = errors.New("la sesión aún se está cargando")

	// Comunicación con la API de inventario.
	ErrNetwork = errors.New("no se pudo contactar al servidor")
	ErrTimeout = errors.New("el servidor tardó demasiado en responder")
	ErrBackend = errors.New("error interno del servidor")
)
