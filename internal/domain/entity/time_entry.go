package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxHoursPerEntry tope de horas de un registro diario.
const MaxHoursPerEntry = 24

// TimeEntry horas trabajadas en un proyecto, opcionalmente contra un contrato o enmienda.
type TimeEntry struct {
	ID          string
	TenantID    string
	ProjectID   string
	ContractID  *string
	AmendmentID *string
	UserID      string
	RoleName    string
	Date        time.Time
	Hours       decimal.Decimal
	Description string
	CreatedAt   time.Time
}
