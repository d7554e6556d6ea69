package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

func TestUserCreate(t *testing.T) {
	repo := &fakeUsers{}
	uc := NewUserUseCase(repo, nil)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "Luis", Email: "no-es-correo", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Name: "Luis", Email: "luis@example.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Name: "Luis", Email: "luis@example.com", Password: "secreta", Role: "jefe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "Luis", Email: "luis@example.com", Password: "secreta", Role: "Employee"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmpleado, u.Role)
	assert.True(t, u.Active)
	assert.Equal(t, "secreta", repo.created.Password)
}

func TestUserUpdate_Parcial(t *testing.T) {
	repo := &fakeUsers{users: map[string]entity.User{
		"u-2": {ID: "u-2", Name: "Luis", Email: "luis@example.com", Role: entity.RoleEmpleado, Active: true},
	}}
	uc := NewUserUseCase(repo, nil)

	role := "gerente"
	inactive := false
	u, err := uc.Update(context.Background(), "u-2", dto.UpdateUserRequest{Role: &role, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGerente, u.Role)
	assert.False(t, u.Active)
	assert.Equal(t, "luis@example.com", u.Email)
	assert.Empty(t, repo.updated.Password, "sin contraseña nueva no se envía")

	missing, err := uc.Update(context.Background(), "u-404", dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserDelete_NoASiMismo(t *testing.T) {
	uc := NewUserUseCase(&fakeUsers{users: map[string]entity.User{}}, nil)
	err := uc.Delete(context.Background(), sessionFor("admin", ""), "u-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NoError(t, uc.Delete(context.Background(), sessionFor("admin", ""), "u-2"))
}

func TestSetPermissions_NormalizaYValida(t *testing.T) {
	repo := &fakeUsers{}
	n := &recordingNotifier{}
	uc := NewUserUseCase(repo, n)

	got, err := uc.SetPermissions(context.Background(), "u-2", []string{" Productos.ver", "salidas.crear", "productos.ver", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"productos.ver", "salidas.crear"}, got)
	assert.Equal(t, got, repo.perms["u-2"])
	assert.Equal(t, []string{"usuarios"}, n.modules)

	_, err = uc.SetPermissions(context.Background(), "u-2", []string{"productos.volar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err = uc.SetPermissions(context.Background(), "u-2", []string{"*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, got)

	got, err = uc.SetPermissions(context.Background(), "u-2", nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAuditList_FiltrosYOrden(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeCRUD[entity.AuditRecord]{items: []entity.AuditRecord{
		{ID: "a-1", UserID: "u-1", Module: "productos", Action: "crear", Date: base},
		{ID: "a-2", UserID: "u-2", Module: "salidas", Action: "crear", Date: base.Add(time.Hour)},
		{ID: "a-3", UserID: "u-1", Module: "Productos", Action: "eliminar", Date: base.Add(2 * time.Hour)},
		{ID: "a-4", UserID: "u-1", Module: "productos", Action: "editar", Date: base.Add(48 * time.Hour)},
	}}
	uc := NewAuditUseCase(repo)
	s := sessionFor("admin", "")

	res, err := uc.List(context.Background(), s, dto.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, "a-4", res.Items[0].ID, "más reciente primero")

	to := base.Add(3 * time.Hour)
	res, err = uc.List(context.Background(), s, dto.AuditFilter{Module: "productos", UserID: "u-1", To: &to})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "a-3", res.Items[0].ID)
	assert.Equal(t, "a-1", res.Items[1].ID)

	res, err = uc.List(context.Background(), s, dto.AuditFilter{Action: "crear", From: &to})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}
