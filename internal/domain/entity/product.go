package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alcance de un producto del catálogo.
const (
	ProductScopeGlobal = "global"
	ProductScopeTenant = "tenant"
)

// Estados de un producto.
const (
	ProductStatusActive       = "active"
	ProductStatusDiscontinued = "discontinued"
)

// Product representa una entrada del catálogo compartido.
// Scope global: visible para todos los estudios. Scope tenant: privado de OwnerTenantID.
type Product struct {
	ID            string
	Scope         string
	OwnerTenantID *string // solo cuando Scope = tenant
	SKU           string
	Name          string
	Description   string
	Category      string
	VendorName    string
	ListPrice     *decimal.Decimal // precio de lista del proveedor; nil = sin precio
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VisibleTo indica si el estudio puede ver el producto.
func (p *Product) VisibleTo(tenantID string) bool {
	switch p.Scope {
	case ProductScopeGlobal:
		return true
	case ProductScopeTenant:
		return p.OwnerTenantID != nil && *p.OwnerTenantID == tenantID
	}
	return false
}

// OwnedBy indica si el producto es privado del estudio (editable por él).
func (p *Product) OwnedBy(tenantID string) bool {
	return p.Scope == ProductScopeTenant && p.OwnerTenantID != nil && *p.OwnerTenantID == tenantID
}
