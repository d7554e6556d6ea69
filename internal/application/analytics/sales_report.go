// Package analytics arma el reporte de ventas sobre las salidas con motivo venta
// y administra los presets de filtros que el usuario guarda.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

const dayLayout = "2006-01-02"

// SalesReportUseCase reporte de ventas.
type SalesReportUseCase struct {
	exits    repository.ExitRepository
	products repository.ProductRepository
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(exits repository.ExitRepository, products repository.ProductRepository) *SalesReportUseCase {
	return &SalesReportUseCase{exits: exits, products: products}
}

// Sales calcula totales, ranking por producto y serie diaria.
// Para usuarios con ubicación asignada un filtro vacío toma la suya y uno distinto es prohibido.
func (uc *SalesReportUseCase) Sales(ctx context.Context, s *entity.Session, f dto.SalesReportRequest) (*dto.SalesReport, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("el rango de fechas está invertido: %w", domain.ErrInvalidInput)
	}
	if scope := permission.For(s).LocationScope(); scope != "" {
		if loc := strings.TrimSpace(f.LocationID); loc != "" && loc != scope {
			return nil, fmt.Errorf("solo puede consultar su ubicación: %w", domain.ErrForbidden)
		}
		f.LocationID = scope
	}
	exits, err := uc.exits.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx)
	if err != nil {
		return nil, err
	}

	rep := &dto.SalesReport{
		Filters: f,
		Totals:  dto.SalesTotals{Units: decimal.Zero, Revenue: decimal.Zero, AverageTicket: decimal.Zero},
		Ranking: []dto.ProductSales{},
		Daily:   []dto.DailySales{},
	}
	byProduct := map[string]*dto.ProductSales{}
	byDay := map[string]*dto.DailySales{}

	for _, e := range exits {
		if !strings.EqualFold(e.Reason, entity.ExitReasonVenta) {
			continue
		}
		if f.LocationID != "" && e.LocationID != f.LocationID {
			continue
		}
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		total := e.Total
		if total.IsZero() {
			total = e.Quantity.Mul(e.UnitPrice)
		}

		rep.Totals.Units = rep.Totals.Units.Add(e.Quantity)
		rep.Totals.Revenue = rep.Totals.Revenue.Add(total)
		rep.Totals.Transactions++

		ps, ok := byProduct[e.ProductID]
		if !ok {
			name := e.ProductName
			if name == "" {
				name = names[e.ProductID]
			}
			ps = &dto.ProductSales{ProductID: e.ProductID, ProductName: name, Units: decimal.Zero, Revenue: decimal.Zero}
			byProduct[e.ProductID] = ps
		}
		ps.Units = ps.Units.Add(e.Quantity)
		ps.Revenue = ps.Revenue.Add(total)

		day := e.Date.UTC().Format(dayLayout)
		ds, ok := byDay[day]
		if !ok {
			ds = &dto.DailySales{Date: day, Units: decimal.Zero, Revenue: decimal.Zero}
			byDay[day] = ds
		}
		ds.Units = ds.Units.Add(e.Quantity)
		ds.Revenue = ds.Revenue.Add(total)
		ds.Transactions++
	}

	if rep.Totals.Transactions > 0 {
		rep.Totals.AverageTicket = rep.Totals.Revenue.Div(decimal.NewFromInt(int64(rep.Totals.Transactions))).Round(2)
	}
	for _, ps := range byProduct {
		rep.Ranking = append(rep.Ranking, *ps)
	}
	sort.Slice(rep.Ranking, func(i, j int) bool {
		a, b := rep.Ranking[i], rep.Ranking[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ProductID < b.ProductID
	})
	for _, ds := range byDay {
		rep.Daily = append(rep.Daily, *ds)
	}
	sort.Slice(rep.Daily, func(i, j int) bool { return rep.Daily[i].Date < rep.Daily[j].Date })
	return rep, nil
}

func (uc *SalesReportUseCase) productNames(ctx context.Context) (map[string]string, error) {
	if uc.products == nil {
		return map[string]string{}, nil
	}
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, p := range list {
		names[p.ID] = p.Name
	}
	return names, nil
}
