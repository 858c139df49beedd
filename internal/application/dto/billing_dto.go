package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMilestoneRequest alta de hito de cobro.
type CreateMilestoneRequest struct {
	Name       string          `json:"name" validate:"required,max=200"`
	TargetDate *time.Time      `json:"targetDate"`
	Amount     decimal.Decimal `json:"amount"`
	AutoCharge bool            `json:"autoCharge"`
}

// MilestoneResponse hito en respuestas HTTP.
type MilestoneResponse struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"projectId"`
	Name       string          `json:"name"`
	TargetDate *time.Time      `json:"targetDate"`
	Amount     decimal.Decimal `json:"amount"`
	AutoCharge bool            `json:"autoCharge"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// PayMilestoneResponse datos para confirmar el pago en el cliente.
type PayMilestoneResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// WebhookAck respuesta a los webhooks del proveedor de pagos.
type WebhookAck struct {
	Received bool `json:"received"`
}
