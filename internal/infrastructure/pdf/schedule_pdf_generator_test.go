package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleSchedule() dto.ScheduleDocument {
	return dto.ScheduleDocument{
		ProjectName: "Casa Rosales",
		Address:     "Cra 7 # 71-21, Bogotá",
		GeneratedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Lines: []dto.ScheduleLine{
			{Tag: "L-1", Item: "Lámpara colgante", Space: "Sala", Quantity: decimal.NewFromInt(2), Unit: "ea", UnitPrice: price("6500.00"), TagConflict: true},
			{Tag: "L-1", Item: "Aplique de pared", Space: "Cocina", Quantity: decimal.NewFromInt(1), Unit: "ea", TagConflict: true},
			{Item: "Tapete lana", Space: "Sala", Quantity: decimal.RequireFromString("1.5"), Unit: "m2", UnitPrice: price("120")},
		},
	}
}

func TestGenerateSchedule_ProducePDF(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateSchedule(context.Background(), sampleSchedule())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSchedule_SinLineas(t *testing.T) {
	doc := sampleSchedule()
	doc.Lines = nil
	out, err := NewMarotoPDFGenerator().GenerateSchedule(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestScheduleTotal_IgnoraLineasSinPrecio(t *testing.T) {
	total, unpriced := scheduleTotal(sampleSchedule().Lines)
	assert.True(t, total.Equal(decimal.RequireFromString("13180")), total.String())
	assert.Equal(t, 1, unpriced)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "6.500,00", formatMoney(decimal.NewFromInt(6500)))
	assert.Equal(t, "1.000.000,50", formatMoney(decimal.RequireFromString("1000000.5")))
	assert.Equal(t, "999,99", formatMoney(decimal.RequireFromString("999.99")))
	assert.Equal(t, "-1.200,00", formatMoney(decimal.NewFromInt(-1200)))
}
