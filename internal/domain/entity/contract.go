package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modelos de cobro de un contrato.
const (
	BillingModelHourly   = "hourly"
	BillingModelFlatRate = "flat_rate"
	BillingModelHybrid   = "hybrid"
)

// Estados de contratos y enmiendas.
const (
	ContractStatusDraft  = "draft"
	ContractStatusSent   = "sent"
	ContractStatusSigned = "signed"
	ContractStatusVoid   = "void"
)

// ContractTemplate plantilla de contrato del estudio. Body admite {{placeholders}}.
type ContractTemplate struct {
	ID        string
	TenantID  string
	Name      string
	Type      string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contract contrato de servicios de un proyecto.
type Contract struct {
	ID                 string
	TenantID           string
	ProjectID          string
	TemplateID         *string
	Title              string
	Body               string // texto de la plantilla ya completado
	BillingModel       string
	BaseHoursAllocated *decimal.Decimal
	BaseFlatAmount     *decimal.Decimal
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Amendment amplía horas o monto de un contrato.
type Amendment struct {
	ID                  string
	TenantID            string
	ContractID          string
	Title               string
	Description         string
	ExtraHoursAllocated *decimal.Decimal
	ExtraFlatAmount     *decimal.Decimal
	Status              string
	CreatedAt           time.Time
}

// ValidBillingModel indica si m es un modelo de cobro conocido.
func ValidBillingModel(m string) bool {
	switch m {
	case BillingModelHourly, BillingModelFlatRate, BillingModelHybrid:
		return true
	}
	return false
}

// ValidContractStatus indica si s es un estado de contrato conocido.
func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusSigned, ContractStatusVoid:
		return true
	}
	return false
}

// AllocatedHours horas base más las de enmiendas no anuladas. nil si el contrato no asigna horas.
func (c *Contract) AllocatedHours(amendments []*Amendment) *decimal.Decimal {
	var total *decimal.Decimal
	add := func(d *decimal.Decimal) {
		if d == nil {
			return
		}
		if total == nil {
			z := decimal.Zero
			total = &z
		}
		sum := total.Add(*d)
		total = &sum
	}
	add(c.BaseHoursAllocated)
	for _, a := range amendments {
		if a.ContractID == c.ID && a.Status != ContractStatusVoid {
			add(a.ExtraHoursAllocated)
		}
	}
	return total
}
