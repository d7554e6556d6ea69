package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*Resource[entity.Product])(nil)
	_ repository.CategoryRepository = (*Resource[entity.Category])(nil)
	_ repository.SupplierRepository = (*Resource[entity.Supplier])(nil)
	_ repository.LocationRepository = (*Resource[entity.Location])(nil)
	_ repository.EntryRepository    = (*Resource[entity.Entry])(nil)
	_ repository.ExitRepository     = (*Resource[entity.Exit])(nil)
	_ repository.AuditRepository    = (*Resource[entity.AuditRecord])(nil)
	_ repository.TransferRepository = (*TransferAPI)(nil)
	_ repository.UserRepository     = (*UserAPI)(nil)
)

// Repositories agrupa todos los adaptadores remotos construidos sobre un mismo Client.
type Repositories struct {
	Auth       *AuthAPI
	Products   *Resource[entity.Product]
	Categories *Resource[entity.Category]
	Suppliers  *Resource[entity.Supplier]
	Locations  *Resource[entity.Location]
	Entries    *Resource[entity.Entry]
	Exits      *Resource[entity.Exit]
	Audit      *Resource[entity.AuditRecord]
	Transfers  *TransferAPI
	Users      *UserAPI
}

// NewRepositories construye los adaptadores.
func NewRepositories(c *Client) *Repositories {
	return &Repositories{
		Auth:       NewAuthAPI(c),
		Products:   NewResource[entity.Product](c, PathProductos),
		Categories: NewResource[entity.Category](c, PathCategorias),
		Suppliers:  NewResource[entity.Supplier](c, PathProveedores),
		Locations:  NewResource[entity.Location](c, PathUbicaciones),
		Entries:    NewResource[entity.Entry](c, PathEntradas),
		Exits:      NewResource[entity.Exit](c, PathSalidas),
		Audit:      NewResource[entity.AuditRecord](c, PathAuditoria),
		Transfers:  &TransferAPI{Resource: NewResource[entity.Transfer](c, PathTraslados)},
		Users:      &UserAPI{c: c, list: NewResource[entity.User](c, PathUsuarios)},
	}
}

// TransferAPI traslados: CRUD genérico más la acción de cancelar.
type TransferAPI struct {
	*Resource[entity.Transfer]
}

// Cancel anula un traslado pendiente.
func (t *TransferAPI) Cancel(ctx context.Context, id string) (*entity.Transfer, error) {
	var out entity.Transfer
	if err := t.c.Do(ctx, http.MethodPost, escape(t.path, id, "cancelar"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserAPI usuarios: la escritura lleva contraseña, la lectura no.
type UserAPI struct {
	c    *Client
	list *Resource[entity.User]
}

func (u *UserAPI) List(ctx context.Context) ([]entity.User, error) { return u.list.List(ctx) }

func (u *UserAPI) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return u.list.GetByID(ctx, id)
}

func (u *UserAPI) Delete(ctx context.Context, id string) error { return u.list.Delete(ctx, id) }

// Create crea un usuario con contraseña inicial.
func (u *UserAPI) Create(ctx context.Context, in *repository.UserPayload) (*entity.User, error) {
	var out entity.User
	if err := u.c.Do(ctx, http.MethodPost, PathUsuarios, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita un usuario; Password vacío no se envía.
func (u *UserAPI) Update(ctx context.Context, id string, in *repository.UserPayload) (*entity.User, error) {
	var out entity.User
	if err := u.c.Do(ctx, http.MethodPut, escape(PathUsuarios, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPermissions reemplaza la lista de permisos del usuario.
func (u *UserAPI) SetPermissions(ctx context.Context, id string, permissions []string) error {
	body := struct {
		Permisos []string `json:"permisos"`
	}{Permisos: permissions}
	return u.c.Do(ctx, http.MethodPut, escape(PathUsuarios, id, "permisos"), nil, body, nil)
}
