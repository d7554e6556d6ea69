package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de traslado.
const (
	TransferPending   = "pendiente"
	TransferCompleted = "completado"
	TransferCancelled = "cancelado"
)

// Transfer traslado de productos entre dos ubicaciones.
type Transfer struct {
	ID            string         `json:"id"`
	OriginID      string         `json:"origenId"`
	DestinationID string         `json:"destinoId"`
	Items         []TransferItem `json:"items"`
	Status        string         `json:"estado"`
	Note          string         `json:"nota,omitempty"`
	UserID        string         `json:"usuarioId,omitempty"`
	Date          time.Time      `json:"fecha"`
}

// TransferItem línea de un traslado.
type TransferItem struct {
	ProductID string          `json:"productoId"`
	Quantity  decimal.Decimal `json:"cantidad"`
}

// Involves indica si la ubicación es origen o destino del traslado.
func (t Transfer) Involves(locationID string) bool {
	return t.OriginID == locationID || t.DestinationID == locationID
}
