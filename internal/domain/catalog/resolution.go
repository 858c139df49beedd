// Package catalog contiene la resolución de precios por estudio sobre el catálogo compartido.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// ResolvedProduct es la vista de lectura de un producto para un estudio concreto.
// Los campos User* provienen del override; nil significa "sin precio aún", nunca gratis.
type ResolvedProduct struct {
	Product          *entity.Product
	OverrideID       string
	UserPrice        *decimal.Decimal
	UserCost         *decimal.Decimal
	UserMarkup       *decimal.Decimal
	UserNotes        *string
	UserAvailability string
}

// EffectivePrice devuelve el precio de venta del estudio o, en su defecto, el precio de lista.
func (r ResolvedProduct) EffectivePrice() *decimal.Decimal {
	if r.UserPrice != nil {
		return r.UserPrice
	}
	if r.Product != nil {
		return r.Product.ListPrice
	}
	return nil
}

// Priced indica si existe algún precio aplicable.
func (r ResolvedProduct) Priced() bool { return r.EffectivePrice() != nil }

// Resolution es el resultado de Resolve. Duplicates > 0 señala un problema de integridad:
// más de un override (tenant, producto, variante nula) llegó desde el almacenamiento.
type Resolution struct {
	View       ResolvedProduct
	Duplicates int
}

// Resolve combina un producto con los overrides del estudio que lo consulta.
// Solo cuentan overrides del mismo producto y sin variante. Si hay varios se toma
// el creado más recientemente (empate: mayor ID) y el resto se reporta en Duplicates.
func Resolve(p *entity.Product, overrides []*entity.TenantProductOverride) Resolution {
	var chosen *entity.TenantProductOverride
	candidates := 0
	for _, o := range overrides {
		if o == nil || o.ProductID != p.ID || o.VariantID != nil {
			continue
		}
		candidates++
		if chosen == nil || newer(o, chosen) {
			chosen = o
		}
	}

	view := ResolvedProduct{Product: p, UserAvailability: entity.AvailabilityDefault}
	if chosen == nil {
		return Resolution{View: view}
	}

	view.OverrideID = chosen.ID
	view.UserPrice = chosen.SellPrice
	view.UserCost = chosen.CostPrice
	view.UserMarkup = chosen.MarkupPercent
	notes := chosen.InternalNotes
	view.UserNotes = &notes
	if chosen.Availability != "" {
		view.UserAvailability = chosen.Availability
	}
	return Resolution{View: view, Duplicates: candidates - 1}
}

func newer(a, b *entity.TenantProductOverride) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
