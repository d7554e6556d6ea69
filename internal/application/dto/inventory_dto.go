package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// MovementFilter filtros de las vistas de entradas, salidas y traslados.
type MovementFilter struct {
	From       *time.Time
	To         *time.Time
	ProductID  string
	LocationID string
}

// CreateEntryRequest formulario de entrada de mercancía.
type CreateEntryRequest struct {
	ProductID  string          `json:"productoId"`
	LocationID string          `json:"ubicacionId"`
	SupplierID string          `json:"proveedorId"`
	Quantity   decimal.Decimal `json:"cantidad"`
	UnitCost   decimal.Decimal `json:"costoUnitario"`
	Note       string          `json:"nota"`
}

// EntryResult entrada registrada más el costo promedio ponderado resultante.
// AverageCost es nil si la entrada no informa costo.
type EntryResult struct {
	entity.Entry
	AverageCost *decimal.Decimal `json:"costoPromedio,omitempty"`
}

// CreateExitRequest formulario de salida. UnitPrice nil usa el precio del producto.
type CreateExitRequest struct {
	ProductID  string           `json:"productoId"`
	LocationID string           `json:"ubicacionId"`
	Quantity   decimal.Decimal  `json:"cantidad"`
	UnitPrice  *decimal.Decimal `json:"precioUnitario"`
	Reason     string           `json:"motivo"`
	Note       string           `json:"nota"`
}

// TransferLine línea del formulario de traslado.
type TransferLine struct {
	ProductID string          `json:"productoId"`
	Quantity  decimal.Decimal `json:"cantidad"`
}

// CreateTransferRequest formulario de traslado entre ubicaciones.
type CreateTransferRequest struct {
	OriginID      string         `json:"origenId"`
	DestinationID string         `json:"destinoId"`
	Items         []TransferLine `json:"items"`
	Note          string         `json:"nota"`
}
