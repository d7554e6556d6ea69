package usecase

import (
	"context"
	"fmt"
	"net/mail"
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

const minPasswordLen = 6

// UserUseCase administración de usuarios (ruta solo para admin).
type UserUseCase struct {
	repo   repository.UserRepository
	notify ports.Notifier
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, notify ports.Notifier) *UserUseCase {
	if notify == nil {
		notify = ports.NopNotifier{}
	}
	return &UserUseCase{repo: repo, notify: notify}
}

// List devuelve los usuarios ordenados por nombre.
func (uc *UserUseCase) List(ctx context.Context, s *entity.Session) (dto.ListResponse[entity.User], error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.User]{}, err
	}
	sort.SliceStable(items, func(i, j int) bool { return textutil.Fold(items[i].Name) < textutil.Fold(items[j].Name) })
	return dto.NewList(items, permission.For(s).Capabilities(permission.ModuleUsuarios)), nil
}

// Create da de alta un usuario activo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	u := entity.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Role:       entity.NormalizeRole(in.Role),
		LocationID: strings.TrimSpace(in.LocationID),
		Active:     true,
	}
	if u.Role == "" {
		u.Role = entity.RoleEmpleado
	}
	if err := validateUser(&u); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("la contraseña debe tener al menos %d caracteres: %w", minPasswordLen, domain.ErrInvalidInput)
	}
	out, err := uc.repo.Create(ctx, &repository.UserPayload{User: u, Password: in.Password})
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleUsuarios)
	return out, nil
}

// Update aplica una edición parcial. Devuelve nil si el usuario no existe.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*entity.User, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	u := *current
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Role != nil {
		u.Role = entity.NormalizeRole(*in.Role)
	}
	if in.LocationID != nil {
		u.LocationID = strings.TrimSpace(*in.LocationID)
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if err := validateUser(&u); err != nil {
		return nil, err
	}
	payload := &repository.UserPayload{User: u}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minPasswordLen {
			return nil, fmt.Errorf("la contraseña debe tener al menos %d caracteres: %w", minPasswordLen, domain.ErrInvalidInput)
		}
		payload.Password = *in.Password
	}
	out, err := uc.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleUsuarios)
	return out, nil
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, s *entity.Session, id string) error {
	if s != nil && s.UserID == id {
		return fmt.Errorf("no puede eliminar su propio usuario: %w", domain.ErrForbidden)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notify.Refresh(permission.ModuleUsuarios)
	return nil
}

// SetPermissions reemplaza los permisos del usuario. Acepta "*" o "<modulo>.<accion>" del catálogo;
// la lista se deduplica y ordena.
func (uc *UserUseCase) SetPermissions(ctx context.Context, id string, tokens []string) ([]string, error) {
	clean, err := NormalizePermissions(tokens)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetPermissions(ctx, id, clean); err != nil {
		return nil, err
	}
	uc.notify.Refresh(permission.ModuleUsuarios)
	return clean, nil
}

var knownTokens = func() map[string]struct{} {
	set := map[string]struct{}{entity.Wildcard: {}}
	for _, m := range permission.AllModules {
		for _, a := range permission.AllActions {
			set[permission.Token(m, a)] = struct{}{}
		}
	}
	return set
}()

// NormalizePermissions valida y deduplica una lista de permisos.
func NormalizePermissions(tokens []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := knownTokens[t]; !ok {
			return nil, fmt.Errorf("permiso desconocido %q: %w", t, domain.ErrInvalidInput)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func validateUser(u *entity.User) error {
	if u.Name == "" {
		return fmt.Errorf("el nombre es obligatorio: %w", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("correo inválido: %w", domain.ErrInvalidInput)
	}
	switch u.Role {
	case entity.RoleAdmin, entity.RoleGerente, entity.RoleEmpleado:
	default:
		return fmt.Errorf("rol desconocido %q: %w", u.Role, domain.ErrInvalidInput)
	}
	return nil
}
