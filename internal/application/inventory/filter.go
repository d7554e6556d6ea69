package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
)

// inRange indica si la fecha cae en [from, to]; límites nil son abiertos.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// effectiveScope devuelve la ubicación a filtrar. Con ubicación asignada, un filtro vacío
// toma la asignada y uno distinto es prohibido.
func effectiveScope(scope string, f dto.MovementFilter) (string, error) {
	requested := strings.TrimSpace(f.LocationID)
	switch {
	case scope == "":
		return requested, nil
	case requested == "" || requested == scope:
		return scope, nil
	}
	return "", fmt.Errorf("solo puede consultar su ubicación: %w", domain.ErrForbidden)
}
