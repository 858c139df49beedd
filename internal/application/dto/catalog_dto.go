package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolvedProductResponse producto del catálogo visto por un estudio.
// Los campos user* son nulos cuando el estudio no ha fijado precio.
type ResolvedProductResponse struct {
	ID               string           `json:"id"`
	Scope            string           `json:"scope"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	VendorName       string           `json:"vendorName"`
	ListPrice        *decimal.Decimal `json:"listPrice"`
	Status           string           `json:"status"`
	UserPrice        *decimal.Decimal `json:"userPrice"`
	UserCost         *decimal.Decimal `json:"userCost"`
	UserMarkup       *decimal.Decimal `json:"userMarkup"`
	UserNotes        *string          `json:"userNotes"`
	UserAvailability string           `json:"userAvailability"`
	EffectivePrice   *decimal.Decimal `json:"effectivePrice"`
	Priced           bool             `json:"priced"`
}

// CatalogListResponse listado paginado del catálogo.
type CatalogListResponse = Paginated[ResolvedProductResponse]

// CatalogQuery filtros de GET /catalog/products.
type CatalogQuery struct {
	Search        string `query:"search"`
	Category      string `query:"category"`
	IncludeHidden bool   `query:"include_hidden"`
	Page
}

// CreateCustomProductRequest alta de un producto privado del estudio.
type CreateCustomProductRequest struct {
	SKU         string           `json:"sku" validate:"max=64"`
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description"`
	Category    string           `json:"category" validate:"max=100"`
	VendorName  string           `json:"vendorName" validate:"max=200"`
	ListPrice   *decimal.Decimal `json:"listPrice"`
}

// UpdateProductRequest campos editables de un producto privado (nil = sin cambio).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	VendorName  *string          `json:"vendorName" validate:"omitempty,max=200"`
	ListPrice   *decimal.Decimal `json:"listPrice"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active discontinued"`
}

// UpsertOverrideRequest cuerpo de PUT /catalog/products/:id/override. Reemplazo completo.
type UpsertOverrideRequest struct {
	CostPrice     *decimal.Decimal `json:"costPrice"`
	SellPrice     *decimal.Decimal `json:"sellPrice"`
	MarkupPercent *decimal.Decimal `json:"markupPercent"`
	InternalNotes string           `json:"internalNotes" validate:"max=2000"`
	Availability  string           `json:"availability" validate:"omitempty,oneof=default preferred hidden"`
}

// OverrideResponse override persistido.
type OverrideResponse struct {
	ID            string           `json:"id"`
	TenantID      string           `json:"tenantId"`
	ProductID     string           `json:"productId"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	SellPrice     *decimal.Decimal `json:"sellPrice"`
	MarkupPercent *decimal.Decimal `json:"markupPercent"`
	InternalNotes string           `json:"internalNotes"`
	Availability  string           `json:"availability"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
