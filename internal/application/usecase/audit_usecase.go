package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

// AuditUseCase vista de la bitácora (solo lectura).
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List filtra por módulo, usuario, acción y rango de fechas (inclusive) y ordena del más reciente al más antiguo.
func (uc *AuditUseCase) List(ctx context.Context, s *entity.Session, f dto.AuditFilter) (dto.ListResponse[entity.AuditRecord], error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[entity.AuditRecord]{}, err
	}
	out := make([]entity.AuditRecord, 0, len(items))
	for _, a := range items {
		if f.Module != "" && !strings.EqualFold(a.Module, f.Module) {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Action != "" && !strings.EqualFold(a.Action, f.Action) {
			continue
		}
		if f.From != nil && a.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && a.Date.After(*f.To) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return dto.NewList(out, permission.For(s).Capabilities(permission.ModuleAuditoria)), nil
}
