// Package pdf genera el comprobante imprimible de un documento de inventario
// (recepción, entrega, traslado o ajuste).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento      │  Referencia + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN / DESTINO / TERCERO / MOTIVO                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | UdM | Cantidad                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL UNIDADES + QR con la referencia                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/stockmaster-api/internal/application/operations"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var kindTitles = map[entity.DocumentKind]string{
	entity.KindReceipt:    "RECEPCIÓN DE MERCANCÍA",
	entity.KindDelivery:   "ORDEN DE ENTREGA",
	entity.KindTransfer:   "TRASLADO INTERNO",
	entity.KindAdjustment: "AJUSTE DE INVENTARIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa operations.SlipPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateDocumentSlip genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentSlip(_ context.Context, slip *operations.SlipData) ([]byte, error) {
	if slip == nil || slip.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	doc := slip.Document
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Reference, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.Kind))
	m.AddRows(tableDetailRows(slip.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(slip))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de documento (izq) y referencia + estado + fechas (der).
func headerRow(doc *entity.Document) core.Row {
	dates := "Creado: " + doc.CreatedAt.Format("02/01/2006 15:04")
	if doc.ValidatedAt != nil {
		dates += "   Validado: " + doc.ValidatedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(kindTitles[doc.Kind], props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(dates, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(doc.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+doc.Status, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// partiesRow: origen, destino, tercero y motivo según el tipo.
func partiesRow(slip *operations.SlipData) core.Row {
	doc := slip.Document
	left := col.New(6).Add(
		text.New("ORIGEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(slip.Source, "-"), props.Text{Size: 9, Top: 6}),
	)
	right := col.New(6).Add(
		text.New("DESTINO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(slip.Destination, "-"), props.Text{Size: 9, Top: 6}),
	)
	detail := ""
	switch doc.Kind {
	case entity.KindReceipt:
		detail = "Proveedor: " + nonEmpty(doc.PartnerName, "-")
	case entity.KindDelivery:
		detail = "Cliente: " + nonEmpty(doc.PartnerName, "-")
	case entity.KindAdjustment:
		detail = "Motivo: " + nonEmpty(doc.Reason, "-")
	}
	if detail != "" {
		right.Add(text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}))
	}
	return row.New(18).Add(left, right)
}

// tableHeaderRow: en ajustes la columna de cantidad es la cantidad contada.
func tableHeaderRow(kind entity.DocumentKind) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	qty := "Cantidad"
	if kind == entity.KindAdjustment {
		qty = "Contado"
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Producto", 5, align.Left),
		h("UdM", 2, align.Center),
		h(qty, 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento.
func tableDetailRows(lines []operations.SlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.UnitMeasure, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatQty(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: total de unidades + QR con la referencia del documento.
func footerRow(slip *operations.SlipData) core.Row {
	var total int64
	for _, l := range slip.Lines {
		total += l.Quantity
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(slip.Document.Reference, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New(fmt.Sprintf("Líneas: %d", len(slip.Lines)), props.Text{
				Size: 9, Align: align.Right, Top: 4, Right: 1,
			}),
			text.New("TOTAL UNIDADES: "+formatQty(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 12, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty inserta puntos de miles. Ej: 25000 → "25.000".
func formatQty(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg, s = true, s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
