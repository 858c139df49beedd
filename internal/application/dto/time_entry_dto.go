package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest registro de horas. Date en formato AAAA-MM-DD.
type CreateTimeEntryRequest struct {
	ContractID  *string         `json:"contractId"`
	AmendmentID *string         `json:"amendmentId"`
	RoleName    string          `json:"roleName" validate:"required,max=100"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

// TimeEntryResponse registro de horas en respuestas HTTP.
type TimeEntryResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	ContractID  *string         `json:"contractId"`
	AmendmentID *string         `json:"amendmentId"`
	UserID      string          `json:"userId"`
	RoleName    string          `json:"roleName"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ContractHours horas de un contrato frente a lo asignado. ContractID nil agrupa las horas sin contrato.
type ContractHours struct {
	ContractID     *string          `json:"contractId"`
	Title          string           `json:"title"`
	AllocatedHours *decimal.Decimal `json:"allocatedHours"`
	LoggedHours    decimal.Decimal  `json:"loggedHours"`
	RemainingHours *decimal.Decimal `json:"remainingHours"`
	OverAllocated  bool             `json:"overAllocated"`
	BillableAmount decimal.Decimal  `json:"billableAmount"`
}

// TimeSummaryResponse resumen de horas del proyecto. UnratedRoles lista roles sin tarifa configurada.
type TimeSummaryResponse struct {
	ProjectID      string          `json:"projectId"`
	TotalHours     decimal.Decimal `json:"totalHours"`
	BillableAmount decimal.Decimal `json:"billableAmount"`
	Contracts      []ContractHours `json:"contracts"`
	UnratedRoles   []string        `json:"unratedRoles"`
}
