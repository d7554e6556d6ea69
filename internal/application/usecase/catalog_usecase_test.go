package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

func TestSupplierList_BuscaPorNombreONIT(t *testing.T) {
	repo := &fakeCRUD[entity.Supplier]{items: []entity.Supplier{
		{ID: "s-1", Name: "Distribuidora Andina", NIT: "900123456"},
		{ID: "s-2", Name: "Lácteos del Valle", NIT: "800555111"},
	}}
	uc := NewSupplierUseCase(repo, nil)
	s := sessionFor("gerente", "", "proveedores.ver")

	res, err := uc.List(context.Background(), s, dto.SupplierFilter{Search: "lacteos"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "s-2", res.Items[0].ID)

	res, err = uc.List(context.Background(), s, dto.SupplierFilter{Search: "900123"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "s-1", res.Items[0].ID)
	assert.True(t, res.Capabilities.View)
	assert.False(t, res.Capabilities.Create)
}

func TestSupplierCreate_RequiereNIT(t *testing.T) {
	uc := NewSupplierUseCase(&fakeCRUD[entity.Supplier]{}, nil)
	_, err := uc.Create(context.Background(), &entity.Supplier{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierCreate_NormalizaYVerificaNIT(t *testing.T) {
	repo := &fakeCRUD[entity.Supplier]{}
	uc := NewSupplierUseCase(repo, nil)

	out, err := uc.Create(context.Background(), &entity.Supplier{Name: "DIAN", NIT: "800.197.268-4"})
	require.NoError(t, err)
	assert.Equal(t, "800197268-4", out.NIT)

	_, err = uc.Create(context.Background(), &entity.Supplier{Name: "Acme", NIT: "800197268-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), &entity.Supplier{Name: "Acme", NIT: "NIT 900"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBackendErrorSePropaga(t *testing.T) {
	n := &recordingNotifier{}
	uc := NewCategoryUseCase(&fakeCRUD[entity.Category]{err: domain.ErrDuplicate}, n)
	_, err := uc.Create(context.Background(), &entity.Category{Name: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, n.modules, "sin éxito no hay aviso de refresco")
}

func TestCategoryUpdateYDelete(t *testing.T) {
	repo := &fakeCRUD[entity.Category]{}
	n := &recordingNotifier{}
	uc := NewCategoryUseCase(repo, n)

	_, err := uc.Update(context.Background(), "c-1", &entity.Category{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "c-1", &entity.Category{Name: "Aseo"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), "c-1"))
	assert.Equal(t, []string{"c-1"}, repo.deleted)
	assert.Equal(t, []string{"categorias", "categorias"}, n.modules)
}

func TestLocationList_SoloLaAsignada(t *testing.T) {
	repo := &fakeCRUD[entity.Location]{items: []entity.Location{
		{ID: "bod", Name: "Bodega central", Type: entity.LocationBodega},
		{ID: "tda", Name: "Tienda norte", Type: entity.LocationTienda},
	}}
	uc := NewLocationUseCase(repo, nil)

	res, err := uc.List(context.Background(), sessionFor("empleado", "tda", "ubicaciones.ver"))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "tda", res.Items[0].ID)

	res, err = uc.List(context.Background(), sessionFor("admin", "tda"))
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestLocationCreate_TipoValido(t *testing.T) {
	uc := NewLocationUseCase(&fakeCRUD[entity.Location]{}, nil)
	_, err := uc.Create(context.Background(), &entity.Location{Name: "Local", Type: "oficina"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(context.Background(), &entity.Location{Name: "Local", Type: " Tienda "})
	require.NoError(t, err)
	assert.Equal(t, entity.LocationTienda, out.Type)
}
