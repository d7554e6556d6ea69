package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// maxPresets límite de presets guardados por cliente.
const maxPresets = 20

// FilterPresetUseCase presets de filtros del reporte, guardados en la clave report-filters
// del cliente. Sobreviven al logout.
type FilterPresetUseCase struct {
	storage ports.Storage
	now     func() time.Time
}

// NewFilterPresetUseCase construye el caso de uso.
func NewFilterPresetUseCase(storage ports.Storage) *FilterPresetUseCase {
	return &FilterPresetUseCase{storage: storage, now: time.Now}
}

// List devuelve los presets ordenados por nombre. Un valor ilegible se trata como lista vacía.
func (uc *FilterPresetUseCase) List(ctx context.Context, namespace string) ([]entity.ReportFilter, error) {
	raw, ok, err := uc.storage.Get(ctx, namespace, ports.KeyReportFilters)
	if err != nil {
		return nil, fmt.Errorf("presets: leer: %w", err)
	}
	out := []entity.ReportFilter{}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []entity.ReportFilter{}, nil
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// Save guarda el preset; si ya existe uno con el mismo nombre (sin distinguir mayúsculas) lo reemplaza.
func (uc *FilterPresetUseCase) Save(ctx context.Context, namespace string, in dto.SaveFilterRequest) (*entity.ReportFilter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("el preset necesita un nombre: %w", domain.ErrInvalidInput)
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, fmt.Errorf("el rango de fechas está invertido: %w", domain.ErrInvalidInput)
	}
	list, err := uc.List(ctx, namespace)
	if err != nil {
		return nil, err
	}
	preset := entity.ReportFilter{
		Name:       name,
		From:       in.From,
		To:         in.To,
		LocationID: in.LocationID,
		ProductID:  in.ProductID,
		SavedAt:    uc.now().UTC(),
	}
	replaced := false
	for i := range list {
		if strings.EqualFold(list[i].Name, name) {
			list[i] = preset
			replaced = true
			break
		}
	}
	if !replaced {
		if len(list) >= maxPresets {
			return nil, fmt.Errorf("máximo %d presets: %w", maxPresets, domain.ErrInvalidInput)
		}
		list = append(list, preset)
	}
	if err := uc.write(ctx, namespace, list); err != nil {
		return nil, err
	}
	return &preset, nil
}

// Delete elimina el preset por nombre. Devuelve ErrNotFound si no existe.
func (uc *FilterPresetUseCase) Delete(ctx context.Context, namespace, name string) error {
	list, err := uc.List(ctx, namespace)
	if err != nil {
		return err
	}
	out := list[:0]
	found := false
	for _, p := range list {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return domain.ErrNotFound
	}
	return uc.write(ctx, namespace, out)
}

func (uc *FilterPresetUseCase) write(ctx context.Context, namespace string, list []entity.ReportFilter) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("presets: serializar: %w", err)
	}
	if err := uc.storage.Set(ctx, namespace, ports.KeyReportFilters, string(raw)); err != nil {
		return fmt.Errorf("presets: guardar: %w", err)
	}
	return nil
}
