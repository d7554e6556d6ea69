package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de salida de inventario.
const (
	ExitReasonVenta   = "venta"
	ExitReasonMerma   = "merma"
	ExitReasonConsumo = "consumo"
	ExitReasonAjuste  = "ajuste"
)

// ValidExitReason indica si el motivo de salida es uno de los conocidos.
func ValidExitReason(r string) bool {
	switch r {
	case ExitReasonVenta, ExitReasonMerma, ExitReasonConsumo, ExitReasonAjuste:
		return true
	}
	return false
}

// Entry entrada de mercancía a una ubicación, normalmente desde un proveedor.
type Entry struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productoId"`
	ProductName string          `json:"productoNombre,omitempty"`
	LocationID  string          `json:"ubicacionId"`
	SupplierID  string          `json:"proveedorId,omitempty"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitCost    decimal.Decimal `json:"costoUnitario"`
	Note        string          `json:"nota,omitempty"`
	UserID      string          `json:"usuarioId,omitempty"`
	Date        time.Time       `json:"fecha"`
}

// Exit salida de mercancía (venta, merma, consumo interno o ajuste).
type Exit struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productoId"`
	ProductName string          `json:"productoNombre,omitempty"`
	LocationID  string          `json:"ubicacionId"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precioUnitario"`
	Total       decimal.Decimal `json:"total"`
	Reason      string          `json:"motivo"`
	Note        string          `json:"nota,omitempty"`
	UserID      string          `json:"usuarioId,omitempty"`
	Date        time.Time       `json:"fecha"`
}
