package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"github.com/jhoicas/invorya-admin/pkg/nit"
	"github.com/jhoicas/invorya-admin/pkg/textutil"
)

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryUseCase vista de categorías.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	notify ports.Notifier
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, notify ports.Notifier) *CategoryUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &CategoryUseCase{repo: repo, notify: notify}
}

// List devuelve las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, s *entity.Session) (dto.ListResponse[entity.Category], error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Category]{}, err
	}
	sort.SliceStable(items, func(i, j int) bool { return textutil.Fold(items[i].Name) < textutil.Fold(items[j].Name) })
	return dto.NewList(items, permission.For(s).Capabilities(permission.ModuleCategorias)), nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, in *entity.Category) (*entity.Category, error) {
	if err := requireName(&in.Name); err != nil {
		return nil, err
	}
	out, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleCategorias)
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in *entity.Category) (*entity.Category, error) {
	if err := requireName(&in.Name); err != nil {
		return nil, err
	}
	in.ID = id
	out, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleCategorias)
	return out, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notify.Refresh(permission.ModuleCategorias)
	return nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// SupplierUseCase vista de proveedores.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	notify ports.Notifier
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, notify ports.Notifier) *SupplierUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &SupplierUseCase{repo: repo, notify: notify}
}

// List filtra por nombre o NIT.
func (uc *SupplierUseCase) List(ctx context.Context, s *entity.Session, f dto.SupplierFilter) (dto.ListResponse[entity.Supplier], error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Supplier]{}, err
	}
	out := make([]entity.Supplier, 0, len(items))
	for _, sp := range items {
		if textutil.Contains(f.Search, sp.Name, sp.NIT) {
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return textutil.Fold(out[i].Name) < textutil.Fold(out[j].Name) })
	return dto.NewList(out, permission.For(s).Capabilities(permission.ModuleProveedores)), nil
}

// Create crea un proveedor; nombre y NIT son obligatorios.
func (uc *SupplierUseCase) Create(ctx context.Context, in *entity.Supplier) (*entity.Supplier, error) {
	if err := validateSupplier(in); err != nil {
		return nil, err
	}
	out, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleProveedores)
	return out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in *entity.Supplier) (*entity.Supplier, error) {
	if err := validateSupplier(in); err != nil {
		return nil, err
	}
	in.ID = id
	out, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleProveedores)
	return out, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notify.Refresh(permission.ModuleProveedores)
	return nil
}

func validateSupplier(in *entity.Supplier) error {
	if err := requireName(&in.Name); err != nil {
		return err
	}
	if strings.TrimSpace(in.NIT) == "" {
		return fmt.Errorf("el NIT es obligatorio: %w", domain.ErrInvalidInput)
	}
	norm, err := nit.Normalize(in.NIT)
	if err != nil {
		if errors.Is(err, nit.ErrCheckDigit) {
			return fmt.Errorf("el dígito de verificación del NIT no coincide: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("el NIT solo admite dígitos, puntos y un guion antes del dígito de verificación: %w", domain.ErrInvalidInput)
	}
	in.NIT = norm
	return nil
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

// LocationUseCase vista de ubicaciones (bodegas y tiendas).
type LocationUseCase struct {
	repo   repository.LocationRepository
	notify ports.Notifier
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, notify ports.Notifier) *LocationUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &LocationUseCase{repo: repo, notify: notify}
}

// List devuelve las ubicaciones; un usuario con ubicación asignada solo ve la suya.
func (uc *LocationUseCase) List(ctx context.Context, s *entity.Session) (dto.ListResponse[entity.Location], error) {
	r := permission.For(s)
	items, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.Location]{}, err
	}
	if scope := r.LocationScope(); scope != "" {
		own := make([]entity.Location, 0, 1)
		for _, l := range items {
			if l.ID == scope {
				own = append(own, l)
			}
		}
		items = own
	}
	sort.SliceStable(items, func(i, j int) bool { return textutil.Fold(items[i].Name) < textutil.Fold(items[j].Name) })
	return dto.NewList(items, r.Capabilities(permission.ModuleUbicaciones)), nil
}

func (uc *LocationUseCase) Create(ctx context.Context, in *entity.Location) (*entity.Location, error) {
	if err := validateLocation(in); err != nil {
		return nil, err
	}
	out, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleUbicaciones)
	return out, nil
}

func (uc *LocationUseCase) Update(ctx context.Context, id string, in *entity.Location) (*entity.Location, error) {
	if err := validateLocation(in); err != nil {
		return nil, err
	}
	in.ID = id
	out, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleUbicaciones)
	return out, nil
}

func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notify.Refresh(permission.ModuleUbicaciones)
	return nil
}

func validateLocation(in *entity.Location) error {
	if err := requireName(&in.Name); err != nil {
		return err
	}
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type != entity.LocationBodega && in.Type != entity.LocationTienda {
		return fmt.Errorf("tipo de ubicación inválido %q: %w", in.Type, domain.ErrInvalidInput)
	}
	return nil
}

func requireName(name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return fmt.Errorf("el nombre es obligatorio: %w", domain.ErrInvalidInput)
	}
	return nil
}
