package entity

import "time"

// ReportFilter preset de filtros del reporte de ventas guardado por el usuario.
type ReportFilter struct {
	Name       string     `json:"name"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	LocationID string     `json:"locationId,omitempty"`
	ProductID  string     `json:"productId,omitempty"`
	SavedAt    time.Time  `json:"savedAt"`
}
