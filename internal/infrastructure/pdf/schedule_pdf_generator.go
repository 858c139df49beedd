// Package pdf genera el cronograma de specs (schedule) de un proyecto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Dirección  │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tag | Ítem | Espacio | Cant. | P.Unit | Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total presupuestado / líneas sin precio            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de conflictos de tag                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
)

var _ ports.SchedulePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.SchedulePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSchedule genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSchedule(ctx context.Context, doc dto.ScheduleDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cronograma de especificaciones", true).
		WithSubject(doc.ProjectName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(doc.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Lines))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y dirección del proyecto (izq) y fecha (der).
func headerRow(doc dto.ScheduleDocument) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(doc.ProjectName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Address, "Sin dirección"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("CRONOGRAMA DE ESPECIFICACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de specs.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tag", 1, align.Left),
		h("Ítem", 4, align.Left),
		h("Espacio", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Estado", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por spec, marcando las que comparten tag con otro producto.
func tableLineRows(lines []dto.ScheduleLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		status := text.New("", props.Text{Size: 8})
		if l.TagConflict {
			status = text.New("CONFLICTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorAlert,
			})
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(nonEmpty(l.Tag, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Item, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Space, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(
				strings.TrimSpace(l.Quantity.String()+" "+l.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				priceLabel(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(status),
		))
	}
	return result
}

// totalsRow: suma cantidad × precio de las líneas con precio y cuenta las que no tienen.
func totalsRow(lines []dto.ScheduleLine) core.Row {
	total, unpriced := scheduleTotal(lines)
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Total presupuestado:"), text.New("Líneas sin precio:", props.Text{
			Size: 8, Align: align.Right, Right: 2, Top: 6, Color: colorGray,
		})),
		col.New(3).Add(value("$"+formatMoney(total)), text.New(fmt.Sprintf("%d", unpriced), props.Text{
			Size: 8, Align: align.Right, Right: 1, Top: 6, Color: colorGray,
		})),
	)
}

// footerRow: leyenda de conflictos si hay alguno.
func footerRow(lines []dto.ScheduleLine) core.Row {
	conflicts := 0
	for _, l := range lines {
		if l.TagConflict {
			conflicts++
		}
	}
	msg := "Sin conflictos de tag."
	color := colorGray
	if conflicts > 0 {
		msg = fmt.Sprintf("%d líneas marcadas CONFLICTO: el mismo tag identifica productos distintos en este proyecto.", conflicts)
		color = colorAlert
	}
	return row.New(8).Add(col.New(12).Add(text.New(msg, props.Text{Size: 7.5, Top: 2, Color: color})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scheduleTotal(lines []dto.ScheduleLine) (decimal.Decimal, int) {
	total := decimal.Zero
	unpriced := 0
	for _, l := range lines {
		if l.UnitPrice == nil {
			unpriced++
			continue
		}
		total = total.Add(l.UnitPrice.Mul(l.Quantity))
	}
	return total, unpriced
}

func priceLabel(p *decimal.Decimal) string {
	if p == nil {
		return "Sin precio"
	}
	return "$" + formatMoney(*p)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 6500 → "6.500,00", 1000000.5 → "1.000.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
