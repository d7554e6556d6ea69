package repository

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// EntryRepository define el puerto de entradas de inventario.
type EntryRepository interface {
	List(ctx context.Context) ([]entity.Entry, error)
	Create(ctx context.Context, in *entity.Entry) (*entity.Entry, error)
}

// ExitRepository define el puerto de salidas de inventario.
type ExitRepository interface {
	List(ctx context.Context) ([]entity.Exit, error)
	Create(ctx context.Context, in *entity.Exit) (*entity.Exit, error)
}

// TransferRepository define el puerto de traslados entre ubicaciones.
type TransferRepository interface {
	List(ctx context.Context) ([]entity.Transfer, error)
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	Create(ctx context.Context, in *entity.Transfer) (*entity.Transfer, error)
	Cancel(ctx context.Context, id string) (*entity.Transfer, error)
}

// AuditRepository define el puerto de lectura de la bitácora de auditoría.
type AuditRepository interface {
	List(ctx context.Context) ([]entity.AuditRecord, error)
}
