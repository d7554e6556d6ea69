package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

// TransferUseCase vista de traslados entre ubicaciones.
type TransferUseCase struct {
	transfers repository.TransferRepository
	products  repository.ProductRepository
	notify    ports.Notifier
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(transfers repository.TransferRepository, products repository.ProductRepository, notify ports.Notifier) *TransferUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &TransferUseCase{transfers: transfers, products: products, notify: notify}
}

// List devuelve los traslados; con ubicación asignada, solo los que la tienen como origen o destino.
func (uc *TransferUseCase) List(ctx context.Context, s *entity.Session, f dto.MovementFilter) (dto.ListResponse[entity.Transfer], error) {
	r := permission.For(s)
	loc, err := effectiveScope(r.LocationScope(), f)
	if err != nil {
		return dto.ListResponse[entity.Transfer]{}, err
	}
	items, err := uc.transfers.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Transfer]{}, err
	}
	out := make([]entity.Transfer, 0, len(items))
	for _, t := range items {
		if loc != "" && !t.Involves(loc) {
			continue
		}
		if f.ProductID != "" && !hasProduct(t, f.ProductID) {
			continue
		}
		if !inRange(t.Date, f.From, f.To) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return dto.NewList(out, r.Capabilities(permission.ModuleTraslados)), nil
}

// Create valida el formulario y lo convierte en el traslado que espera el backend.
// Las líneas repetidas de un mismo producto se suman; cada total debe caber en el stock del origen.
func (uc *TransferUseCase) Create(ctx context.Context, s *entity.Session, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	t, err := BuildTransfer(in)
	if err != nil {
		return nil, err
	}
	if scope := permission.For(s).LocationScope(); scope != "" && !t.Involves(scope) {
		return nil, fmt.Errorf("el traslado debe involucrar su ubicación: %w", domain.ErrForbidden)
	}
	for _, it := range t.Items {
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		if available := p.StockAt(t.OriginID); it.Quantity.GreaterThan(available) {
			return nil, fmt.Errorf("%s: disponible %s, solicitado %s: %w", p.Name, available, it.Quantity, domain.ErrInsufficientStock)
		}
	}
	t.UserID = userID(s)
	out, err := uc.transfers.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleTraslados)
	uc.notify.Refresh(permission.ModuleProductos)
	return out, nil
}

// Cancel anula un traslado pendiente. Con ubicación asignada, el traslado debe involucrarla.
func (uc *TransferUseCase) Cancel(ctx context.Context, s *entity.Session, id string) (*entity.Transfer, error) {
	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
	}
	if scope := permission.For(s).LocationScope(); scope != "" && !t.Involves(scope) {
		return nil, fmt.Errorf("el traslado no involucra su ubicación: %w", domain.ErrForbidden)
	}
	if t.Status != entity.TransferPending {
		return nil, fmt.Errorf("solo se anulan traslados pendientes (estado %q): %w", t.Status, domain.ErrInvalidInput)
	}
	out, err := uc.transfers.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleTraslados)
	uc.notify.Refresh(permission.ModuleProductos)
	return out, nil
}

// BuildTransfer convierte el formulario en un traslado pendiente.
func BuildTransfer(in dto.CreateTransferRequest) (*entity.Transfer, error) {
	origin := strings.TrimSpace(in.OriginID)
	dest := strings.TrimSpace(in.DestinationID)
	if origin == "" || dest == "" {
		return nil, fmt.Errorf("origen y destino son obligatorios: %w", domain.ErrInvalidInput)
	}
	if origin == dest {
		return nil, fmt.Errorf("origen y destino deben ser distintos: %w", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("el traslado debe tener al menos un producto: %w", domain.ErrInvalidInput)
	}

	order := make([]string, 0, len(in.Items))
	qty := make(map[string]decimal.Decimal, len(in.Items))
	for _, line := range in.Items {
		id := strings.TrimSpace(line.ProductID)
		if id == "" {
			return nil, fmt.Errorf("línea sin producto: %w", domain.ErrInvalidInput)
		}
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("la cantidad debe ser mayor que cero: %w", domain.ErrInvalidInput)
		}
		if _, seen := qty[id]; !seen {
			order = append(order, id)
		}
		qty[id] = qty[id].Add(line.Quantity)
	}

	items := make([]entity.TransferItem, 0, len(order))
	for _, id := range order {
		items = append(items, entity.TransferItem{ProductID: id, Quantity: qty[id]})
	}
	return &entity.Transfer{
		OriginID:      origin,
		DestinationID: dest,
		Items:         items,
		Status:        entity.TransferPending,
		Note:          strings.TrimSpace(in.Note),
	}, nil
}

func hasProduct(t entity.Transfer, productID string) bool {
	for _, it := range t.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
