package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"github.com/jhoicas/invorya-admin/pkg/textutil"
)

// ProductUseCase vista de productos: listado filtrado, stock calculado y CRUD.
type ProductUseCase struct {
	repo   repository.ProductRepository
	notify ports.Notifier
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notify ports.Notifier) *ProductUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &ProductUseCase{repo: repo, notify: notify}
}

// List devuelve los productos que cumplen el filtro, ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, s *entity.Session, f dto.ProductFilter) (dto.ListResponse[dto.ProductView], error) {
	r := permission.For(s)
	products, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[dto.ProductView]{}, err
	}
	scope := r.LocationScope()
	out := make([]dto.ProductView, 0, len(products))
	for _, p := range products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if !textutil.Contains(f.Search, p.Code, p.Name) {
			continue
		}
		v := toProductView(p, scope)
		if f.LowStock && !v.LowStock {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return textutil.Fold(out[i].Name) < textutil.Fold(out[j].Name)
	})
	return dto.NewList(out, r.Capabilities(permission.ModuleProductos)), nil
}

// GetByID obtiene un producto; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, s *entity.Session, id string) (*dto.ProductView, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	v := toProductView(*p, permission.For(s).LocationScope())
	return &v, nil
}

// Create crea un producto. Código y nombre son obligatorios; precio, costo y mínimo no negativos.
func (uc *ProductUseCase) Create(ctx context.Context, in *entity.Product) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	out, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleProductos)
	return out, nil
}

// Update edita un producto. El stock no se edita desde aquí: cambia con entradas, salidas y traslados.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in *entity.Product) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	in.ID = id
	in.Stock = nil
	out, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleProductos)
	return out, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notify.Refresh(permission.ModuleProductos)
	return nil
}

func validateProduct(p *entity.Product) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if p.Code == "" || p.Name == "" {
		return fmt.Errorf("código y nombre son obligatorios: %w", domain.ErrInvalidInput)
	}
	if p.Price.IsNegative() || p.Cost.IsNegative() || p.MinStock.IsNegative() {
		return fmt.Errorf("precio, costo y stock mínimo no pueden ser negativos: %w", domain.ErrInvalidInput)
	}
	return nil
}

// toProductView calcula el stock visible: total de todas las ubicaciones o, con scope, solo el de esa ubicación.
func toProductView(p entity.Product, scope string) dto.ProductView {
	total := p.TotalStock()
	if scope != "" {
		total = p.StockAt(scope)
	}
	low := !p.MinStock.IsZero() && total.LessThanOrEqual(p.MinStock)
	return dto.ProductView{Product: p, TotalStock: total, LowStock: low}
}
