package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// ProductFilter filtros de la vista de productos.
type ProductFilter struct {
	Search     string `query:"q"`
	CategoryID string `query:"categoria"`
	LowStock   bool   `query:"stockBajo"`
}

// ProductView producto con stock total y alerta de stock bajo ya calculados.
// Para usuarios con ubicación asignada el total es el de esa ubicación.
type ProductView struct {
	entity.Product
	TotalStock decimal.Decimal `json:"stockTotal"`
	LowStock   bool            `json:"stockBajo"`
}

// SupplierFilter filtros de la vista de proveedores.
type SupplierFilter struct {
	Search string `query:"q"`
}

// ReplenishmentSuggestion fila de la lista de reposición.
type ReplenishmentSuggestion struct {
	ProductID     string          `json:"productoId"`
	Code          string          `json:"codigo"`
	Name          string          `json:"nombre"`
	CurrentStock  decimal.Decimal `json:"stockActual"`
	MinStock      decimal.Decimal `json:"stockMinimo"`
	SuggestedQty  decimal.Decimal `json:"cantidadSugerida"`
	EstimatedCost decimal.Decimal `json:"costoEstimado"`
	UnitsSold     decimal.Decimal `json:"unidadesVendidas"`
	Priority      int             `json:"prioridad"`
}
