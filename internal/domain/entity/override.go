package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Disponibilidad de un producto para un estudio.
const (
	AvailabilityDefault   = "default"
	AvailabilityPreferred = "preferred"
	AvailabilityHidden    = "hidden"
)

// ValidAvailability indica si s es un valor de disponibilidad aceptado.
func ValidAvailability(s string) bool {
	switch s {
	case AvailabilityDefault, AvailabilityPreferred, AvailabilityHidden:
		return true
	}
	return false
}

// TenantProductOverride anota un producto global con precios y disponibilidad propios del estudio.
// Único por (TenantID, ProductID, VariantID); la base lo garantiza con índices únicos parciales.
type TenantProductOverride struct {
	ID            string
	TenantID      string
	ProductID     string
	VariantID     *string
	CostPrice     *decimal.Decimal
	SellPrice     *decimal.Decimal
	MarkupPercent *decimal.Decimal
	Availability  string
	InternalNotes string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
