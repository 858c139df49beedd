package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/domain/catalog"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func globalProduct() *entity.Product {
	return &entity.Product{ID: "prod-1", Scope: entity.ProductScopeGlobal, Name: "Sofá Lino", Status: entity.ProductStatusActive}
}

// Sin override: disponibilidad "default" y precios en blanco (sin precio, no gratis).
func TestResolve_SinOverride(t *testing.T) {
	res := catalog.Resolve(globalProduct(), nil)

	assert.Equal(t, entity.AvailabilityDefault, res.View.UserAvailability)
	assert.Nil(t, res.View.UserPrice)
	assert.Nil(t, res.View.UserCost)
	assert.Nil(t, res.View.UserMarkup)
	assert.Nil(t, res.View.UserNotes)
	assert.False(t, res.View.Priced(), "un producto sin precio no debe verse como gratis")
	assert.Zero(t, res.Duplicates)
}

// Escenario: sellPrice 6500.00 + preferred se ven literalmente en la vista.
func TestResolve_OverrideUnico(t *testing.T) {
	o := &entity.TenantProductOverride{
		ID: "ov-1", TenantID: "t1", ProductID: "prod-1",
		SellPrice: dec("6500.00"), CostPrice: dec("4000"), MarkupPercent: dec("62.5"),
		Availability: entity.AvailabilityPreferred, InternalNotes: "pedir con 6 semanas",
	}
	res := catalog.Resolve(globalProduct(), []*entity.TenantProductOverride{o})

	require.NotNil(t, res.View.UserPrice)
	assert.True(t, res.View.UserPrice.Equal(decimal.RequireFromString("6500.00")))
	assert.True(t, res.View.UserCost.Equal(decimal.NewFromInt(4000)))
	assert.True(t, res.View.UserMarkup.Equal(decimal.RequireFromString("62.5")))
	assert.Equal(t, "pedir con 6 semanas", *res.View.UserNotes)
	assert.Equal(t, entity.AvailabilityPreferred, res.View.UserAvailability)
	assert.Equal(t, "ov-1", res.View.OverrideID)
	assert.True(t, res.View.Priced())
	assert.Zero(t, res.Duplicates)
}

func TestResolve_PrecioEfectivoUsaListaComoRespaldo(t *testing.T) {
	p := globalProduct()
	p.ListPrice = dec("7200")

	res := catalog.Resolve(p, nil)
	require.NotNil(t, res.View.EffectivePrice())
	assert.True(t, res.View.EffectivePrice().Equal(decimal.NewFromInt(7200)))
	assert.Nil(t, res.View.UserPrice)
}

// Duplicados: se elige el más reciente de forma determinista y se reporta.
func TestResolve_DuplicadosEligeMasReciente(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	older := &entity.TenantProductOverride{ID: "ov-a", ProductID: "prod-1", SellPrice: dec("100"), CreatedAt: base}
	newest := &entity.TenantProductOverride{ID: "ov-b", ProductID: "prod-1", SellPrice: dec("200"), CreatedAt: base.Add(time.Hour)}

	for _, order := range [][]*entity.TenantProductOverride{{older, newest}, {newest, older}} {
		res := catalog.Resolve(globalProduct(), order)
		assert.Equal(t, "ov-b", res.View.OverrideID)
		assert.Equal(t, 1, res.Duplicates)
	}
}

func TestResolve_DuplicadosMismoInstanteDesempataPorID(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := &entity.TenantProductOverride{ID: "ov-1", ProductID: "prod-1", CreatedAt: at}
	b := &entity.TenantProductOverride{ID: "ov-2", ProductID: "prod-1", CreatedAt: at}

	res := catalog.Resolve(globalProduct(), []*entity.TenantProductOverride{b, a})
	assert.Equal(t, "ov-2", res.View.OverrideID)
}

func TestResolve_IgnoraVariantesYOtrosProductos(t *testing.T) {
	variant := "var-1"
	res := catalog.Resolve(globalProduct(), []*entity.TenantProductOverride{
		{ID: "ov-var", ProductID: "prod-1", VariantID: &variant, SellPrice: dec("1")},
		{ID: "ov-otro", ProductID: "prod-2", SellPrice: dec("2")},
	})
	assert.Empty(t, res.View.OverrideID)
	assert.Equal(t, entity.AvailabilityDefault, res.View.UserAvailability)
	assert.Zero(t, res.Duplicates)
}

func TestNormalizeOverride(t *testing.T) {
	o := &entity.TenantProductOverride{TenantID: "t1", ProductID: "p1"}
	require.NoError(t, catalog.NormalizeOverride(o))
	assert.Equal(t, entity.AvailabilityDefault, o.Availability)

	bad := &entity.TenantProductOverride{TenantID: "t1", ProductID: "p1", Availability: "archived"}
	assert.ErrorIs(t, catalog.NormalizeOverride(bad), catalog.ErrInvalidOverride)

	neg := &entity.TenantProductOverride{TenantID: "t1", ProductID: "p1", SellPrice: dec("-1")}
	assert.ErrorIs(t, catalog.NormalizeOverride(neg), catalog.ErrInvalidOverride)

	assert.ErrorIs(t, catalog.NormalizeOverride(nil), catalog.ErrInvalidOverride)
}
