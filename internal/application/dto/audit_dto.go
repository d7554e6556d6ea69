package dto

import "time"

// AuditFilter filtros de la bitácora.
type AuditFilter struct {
	Module string
	UserID string
	Action string
	From   *time.Time
	To     *time.Time
}
