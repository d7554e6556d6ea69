package entity

import "time"

// AuditRecord registro de auditoría generado por el backend.
type AuditRecord struct {
	ID       string    `json:"id"`
	UserID   string    `json:"usuarioId"`
	UserName string    `json:"usuarioNombre,omitempty"`
	Action   string    `json:"accion"`
	Module   string    `json:"modulo"`
	EntityID string    `json:"entidadId,omitempty"`
	Detail   string    `json:"detalle,omitempty"`
	Date     time.Time `json:"fecha"`
}
