package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractTemplateRequest alta de plantilla de contrato.
type CreateContractTemplateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"max=50"`
	Body string `json:"body"`
}

// ContractTemplateResponse plantilla en respuestas HTTP.
type ContractTemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateContractRequest alta de contrato. Con plantilla, el cuerpo se completa con los datos del proyecto.
type CreateContractRequest struct {
	Title              string           `json:"title" validate:"required,max=200"`
	TemplateID         *string          `json:"templateId"`
	BillingModel       string           `json:"billingModel" validate:"required,oneof=hourly flat_rate hybrid"`
	BaseHoursAllocated *decimal.Decimal `json:"baseHoursAllocated"`
	BaseFlatAmount     *decimal.Decimal `json:"baseFlatAmount"`
}

// UpdateContractStatusRequest cambio de estado del contrato.
type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent signed void"`
}

// CreateAmendmentRequest alta de enmienda.
type CreateAmendmentRequest struct {
	Title               string           `json:"title" validate:"required,max=200"`
	Description         string           `json:"description"`
	ExtraHoursAllocated *decimal.Decimal `json:"extraHoursAllocated"`
	ExtraFlatAmount     *decimal.Decimal `json:"extraFlatAmount"`
}

// AmendmentResponse enmienda en respuestas HTTP.
type AmendmentResponse struct {
	ID                  string           `json:"id"`
	ContractID          string           `json:"contractId"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	ExtraHoursAllocated *decimal.Decimal `json:"extraHoursAllocated"`
	ExtraFlatAmount     *decimal.Decimal `json:"extraFlatAmount"`
	Status              string           `json:"status"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// ContractResponse contrato con sus enmiendas.
type ContractResponse struct {
	ID                 string              `json:"id"`
	ProjectID          string              `json:"projectId"`
	TemplateID         *string             `json:"templateId"`
	Title              string              `json:"title"`
	Body               string              `json:"body"`
	BillingModel       string              `json:"billingModel"`
	BaseHoursAllocated *decimal.Decimal    `json:"baseHoursAllocated"`
	BaseFlatAmount     *decimal.Decimal    `json:"baseFlatAmount"`
	Status             string              `json:"status"`
	Amendments         []AmendmentResponse `json:"amendments"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}
