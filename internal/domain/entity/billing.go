package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un hito facturable.
const (
	MilestoneStatusPending = "pending"
	MilestoneStatusPaid    = "paid"
)

// Estados de un intento de pago; solo los cambian los webhooks del proveedor.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// ProjectMilestone es un punto de cobro de un proyecto.
type ProjectMilestone struct {
	ID         string
	TenantID   string
	ProjectID  string
	Name       string
	TargetDate *time.Time
	Amount     decimal.Decimal
	AutoCharge bool
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentRecord es un intento de pago en el proveedor externo.
// Consistente eventualmente con el proveedor, no es autoritativo localmente.
type PaymentRecord struct {
	ID                string
	TenantID          string
	ProjectID         string
	MilestoneID       string
	ExternalPaymentID string
	Amount            decimal.Decimal
	Currency          string
	Status            string
	Provider          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
