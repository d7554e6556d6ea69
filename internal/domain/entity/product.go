package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo tal como lo devuelve la API de inventario.
// El stock ya viene calculado por el backend, desglosado por ubicación.
type Product struct {
	ID          string          `json:"id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	CategoryID  string          `json:"categoriaId,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	Cost        decimal.Decimal `json:"costo"`
	MinStock    decimal.Decimal `json:"stockMinimo"`
	Stock       []LocationStock `json:"stock"`
	Active      bool            `json:"activo"`
	CreatedAt   time.Time       `json:"fechaCreacion"`
}

// LocationStock existencias de un producto en una ubicación.
type LocationStock struct {
	LocationID string          `json:"ubicacionId"`
	Quantity   decimal.Decimal `json:"cantidad"`
}

// TotalStock suma las existencias de todas las ubicaciones.
func (p Product) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.Stock {
		total = total.Add(s.Quantity)
	}
	return total
}

// StockAt devuelve las existencias en una ubicación (cero si no hay registro).
func (p Product) StockAt(locationID string) decimal.Decimal {
	for _, s := range p.Stock {
		if s.LocationID == locationID {
			return s.Quantity
		}
	}
	return decimal.Zero
}

// IsLowStock indica si el stock total está en o por debajo del mínimo configurado.
func (p Product) IsLowStock() bool {
	if p.MinStock.IsZero() {
		return false
	}
	return p.TotalStock().LessThanOrEqual(p.MinStock)
}
