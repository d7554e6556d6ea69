package dto

import "github.com/jhoicas/invorya-admin/internal/domain/permission"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RedirectResponse respuesta de las rutas /api cuando hay que volver a /login.
type RedirectResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// ListResponse listado de una vista con las acciones que el usuario puede ejecutar.
type ListResponse[T any] struct {
	Items        []T                     `json:"items"`
	Total        int                     `json:"total"`
	Capabilities permission.Capabilities `json:"capabilities"`
}

// NewList arma la respuesta; items nil se serializa como [].
func NewList[T any](items []T, caps permission.Capabilities) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items), Capabilities: caps}
}
