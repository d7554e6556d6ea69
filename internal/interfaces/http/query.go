package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
)

const dateLayout = "2006-01-02"

// parseTime acepta RFC3339 o una fecha simple. endOfDay extiende la fecha simple hasta el final del día.
func parseTime(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: %w", raw, domain.ErrInvalidInput)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// dateRange lee ?desde=&hasta=.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = parseTime(c.Query("desde"), false); err != nil {
		return nil, nil, err
	}
	if to, err = parseTime(c.Query("hasta"), true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func movementFilter(c *fiber.Ctx) (dto.MovementFilter, error) {
	from, to, err := dateRange(c)
	if err != nil {
		return dto.MovementFilter{}, err
	}
	return dto.MovementFilter{From: from, To: to, ProductID: c.Query("producto"), LocationID: c.Query("ubicacion")}, nil
}
