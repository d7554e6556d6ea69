package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	valuation "github.com/jhoicas/invorya-admin/internal/domain/inventory"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

// MovementUseCase vistas de entradas y salidas. Un usuario con ubicación asignada
// solo ve y registra movimientos de esa ubicación.
type MovementUseCase struct {
	entries  repository.EntryRepository
	exits    repository.ExitRepository
	products repository.ProductRepository
	notify   ports.Notifier
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	entries repository.EntryRepository,
	exits repository.ExitRepository,
	products repository.ProductRepository,
	notify ports.Notifier,
) *MovementUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &MovementUseCase{entries: entries, exits: exits, products: products, notify: notify}
}

// ListEntries devuelve las entradas filtradas, más recientes primero.
func (uc *MovementUseCase) ListEntries(ctx context.Context, s *entity.Session, f dto.MovementFilter) (dto.ListResponse[entity.Entry], error) {
	r := permission.For(s)
	loc, err := effectiveScope(r.LocationScope(), f)
	if err != nil {
		return dto.ListResponse[entity.Entry]{}, err
	}
	items, err := uc.entries.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Entry]{}, err
	}
	out := make([]entity.Entry, 0, len(items))
	for _, e := range items {
		if loc != "" && e.LocationID != loc {
			continue
		}
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if !inRange(e.Date, f.From, f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return dto.NewList(out, r.Capabilities(permission.ModuleEntradas)), nil
}

// CreateEntry registra una entrada de mercancía y calcula el nuevo costo promedio del producto.
func (uc *MovementUseCase) CreateEntry(ctx context.Context, s *entity.Session, in dto.CreateEntryRequest) (*dto.EntryResult, error) {
	loc, err := resolveLocation(s, in.LocationID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.SupplierID) == "" {
		return nil, fmt.Errorf("producto y proveedor son obligatorios: %w", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("la cantidad debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}
	if in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("el costo unitario no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto no encontrado: %w", domain.ErrNotFound)
	}
	entry := &entity.Entry{
		ProductID:  in.ProductID,
		LocationID: loc,
		SupplierID: in.SupplierID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Note:       strings.TrimSpace(in.Note),
		UserID:     userID(s),
	}
	out, err := uc.entries.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	res := &dto.EntryResult{Entry: *out}
	if in.UnitCost.IsPositive() {
		avg := valuation.WeightedAverageCost(product.TotalStock(), product.Cost, in.Quantity, in.UnitCost).Round(2)
		res.AverageCost = &avg
	}
	uc.notify.Refresh(permission.ModuleEntradas)
	uc.notify.Refresh(permission.ModuleProductos)
	return res, nil
}

// ListExits devuelve las salidas filtradas, más recientes primero.
func (uc *MovementUseCase) ListExits(ctx context.Context, s *entity.Session, f dto.MovementFilter) (dto.ListResponse[entity.Exit], error) {
	r := permission.For(s)
	loc, err := effectiveScope(r.LocationScope(), f)
	if err != nil {
		return dto.ListResponse[entity.Exit]{}, err
	}
	items, err := uc.exits.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Exit]{}, err
	}
	out := make([]entity.Exit, 0, len(items))
	for _, e := range items {
		if loc != "" && e.LocationID != loc {
			continue
		}
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if !inRange(e.Date, f.From, f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return dto.NewList(out, r.Capabilities(permission.ModuleSalidas)), nil
}

// CreateExit registra una salida. La cantidad no puede superar el stock que el panel muestra
// para ese producto en esa ubicación; el total es cantidad × precio unitario.
func (uc *MovementUseCase) CreateExit(ctx context.Context, s *entity.Session, in dto.CreateExitRequest) (*entity.Exit, error) {
	loc, err := resolveLocation(s, in.LocationID)
	if err != nil {
		return nil, err
	}
	reason := strings.ToLower(strings.TrimSpace(in.Reason))
	if !entity.ValidExitReason(reason) {
		return nil, fmt.Errorf("motivo de salida inválido %q: %w", in.Reason, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("el producto es obligatorio: %w", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("la cantidad debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}

	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if available := product.StockAt(loc); in.Quantity.GreaterThan(available) {
		return nil, fmt.Errorf("disponible %s, solicitado %s: %w", available, in.Quantity, domain.ErrInsufficientStock)
	}

	price := product.Price
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("el precio unitario no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	exit := &entity.Exit{
		ProductID:   product.ID,
		ProductName: product.Name,
		LocationID:  loc,
		Quantity:    in.Quantity,
		UnitPrice:   price,
		Total:       in.Quantity.Mul(price).Round(2),
		Reason:      reason,
		Note:        strings.TrimSpace(in.Note),
		UserID:      userID(s),
	}
	out, err := uc.exits.Create(ctx, exit)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleSalidas)
	uc.notify.Refresh(permission.ModuleProductos)
	return out, nil
}

// resolveLocation aplica la ubicación asignada: vacía toma la asignada, distinta es prohibida.
func resolveLocation(s *entity.Session, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	scope := permission.For(s).LocationScope()
	switch {
	case scope == "" && requested == "":
		return "", fmt.Errorf("la ubicación es obligatoria: %w", domain.ErrInvalidInput)
	case scope == "":
		return requested, nil
	case requested == "" || requested == scope:
		return scope, nil
	}
	return "", fmt.Errorf("solo puede registrar movimientos en su ubicación: %w", domain.ErrForbidden)
}

func userID(s *entity.Session) string {
	if s == nil {
		return ""
	}
	return s.UserID
}

