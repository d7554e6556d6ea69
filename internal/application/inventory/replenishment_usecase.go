package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

// salesWindow ventana de ventas usada para priorizar la reposición.
const salesWindow = 90 * 24 * time.Hour

// ReplenishmentUseCase lista de reposición: productos en o bajo el stock mínimo,
// con la cantidad sugerida para volver a 1.5 × mínimo y priorizados por unidades vendidas.
type ReplenishmentUseCase struct {
	products repository.ProductRepository
	exits    repository.ExitRepository
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository, exits repository.ExitRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products, exits: exits, now: time.Now}
}

// List devuelve las sugerencias. Con ubicación asignada se calcula sobre el stock de esa ubicación.
func (uc *ReplenishmentUseCase) List(ctx context.Context, s *entity.Session) (dto.ListResponse[dto.ReplenishmentSuggestion], error) {
	r := permission.For(s)
	scope := r.LocationScope()
	products, err := uc.products.List(ctx)
	if err != nil {
		return dto.ListResponse[dto.ReplenishmentSuggestion]{}, err
	}
	exits, err := uc.exits.List(ctx)
	if err != nil {
		return dto.ListResponse[dto.ReplenishmentSuggestion]{}, err
	}

	since := uc.now().Add(-salesWindow)
	sold := make(map[string]decimal.Decimal)
	for _, e := range exits {
		if e.Reason != entity.ExitReasonVenta || e.Date.Before(since) {
			continue
		}
		if scope != "" && e.LocationID != scope {
			continue
		}
		sold[e.ProductID] = sold[e.ProductID].Add(e.Quantity)
	}

	factor := decimal.NewFromFloat(1.5)
	out := make([]dto.ReplenishmentSuggestion, 0)
	for _, p := range products {
		if p.MinStock.IsZero() {
			continue
		}
		current := p.TotalStock()
		if scope != "" {
			current = p.StockAt(scope)
		}
		if current.GreaterThan(p.MinStock) {
			continue
		}
		suggested := p.MinStock.Mul(factor).Sub(current).Ceil()
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, dto.ReplenishmentSuggestion{
			ProductID:     p.ID,
			Code:          p.Code,
			Name:          p.Name,
			CurrentStock:  current,
			MinStock:      p.MinStock,
			SuggestedQty:  suggested,
			EstimatedCost: suggested.Mul(p.Cost).Round(2),
			UnitsSold:     sold[p.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UnitsSold.Equal(out[j].UnitsSold) {
			return out[i].UnitsSold.GreaterThan(out[j].UnitsSold)
		}
		return out[i].SuggestedQty.GreaterThan(out[j].SuggestedQty)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return dto.NewList(out, r.Capabilities(permission.ModuleProductos)), nil
}
