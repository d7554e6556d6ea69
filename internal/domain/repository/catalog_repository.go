package repository

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// CRUD es el contrato común de los recursos del catálogo en la API remota.
type CRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in *T) (*T, error)
	Update(ctx context.Context, id string, in *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository define el puerto de acceso a productos.
type ProductRepository interface {
	CRUD[entity.Product]
}

// CategoryRepository define el puerto de acceso a categorías.
type CategoryRepository interface {
	CRUD[entity.Category]
}

// SupplierRepository define el puerto de acceso a proveedores.
type SupplierRepository interface {
	CRUD[entity.Supplier]
}

// LocationRepository define el puerto de acceso a ubicaciones.
type LocationRepository interface {
	CRUD[entity.Location]
}
