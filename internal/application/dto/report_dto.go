package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportRequest filtros del reporte de ventas.
type SalesReportRequest struct {
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	LocationID string     `json:"locationId,omitempty"`
	ProductID  string     `json:"productId,omitempty"`
}

// SalesTotals totales del período.
type SalesTotals struct {
	Units         decimal.Decimal `json:"unidades"`
	Revenue       decimal.Decimal `json:"ingresos"`
	Transactions  int             `json:"transacciones"`
	AverageTicket decimal.Decimal `json:"ticketPromedio"`
}

// ProductSales fila del ranking de productos.
type ProductSales struct {
	ProductID   string          `json:"productoId"`
	ProductName string          `json:"productoNombre,omitempty"`
	Units       decimal.Decimal `json:"unidades"`
	Revenue     decimal.Decimal `json:"ingresos"`
}

// DailySales punto de la serie diaria (fecha en UTC, formato 2006-01-02).
type DailySales struct {
	Date         string          `json:"fecha"`
	Units        decimal.Decimal `json:"unidades"`
	Revenue      decimal.Decimal `json:"ingresos"`
	Transactions int             `json:"transacciones"`
}

// SalesReport reporte de ventas completo.
type SalesReport struct {
	Filters SalesReportRequest `json:"filtros"`
	Totals  SalesTotals        `json:"totales"`
	Ranking []ProductSales     `json:"ranking"`
	Daily   []DailySales       `json:"diario"`
}

// SaveFilterRequest guarda un preset de filtros con nombre.
type SaveFilterRequest struct {
	Name string `json:"name"`
	SalesReportRequest
}
