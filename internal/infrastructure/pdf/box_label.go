// Package pdf genera la etiqueta imprimible de una caja recibida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código de caja + estado   │  QR de la caja         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPCIÓN: proveedor / PO / DO / fecha / recibido por      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: QR | SKU | Talla | Color | Cant.                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: unidades                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/stockroom-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.LabelRenderer = (*MarotoLabelRenderer)(nil)

// MarotoLabelRenderer implementa ports.LabelRenderer usando Maroto v2.
type MarotoLabelRenderer struct{}

// NewMarotoLabelRenderer construye el renderizador.
func NewMarotoLabelRenderer() *MarotoLabelRenderer { return &MarotoLabelRenderer{} }

// RenderBoxLabel genera el PDF y devuelve sus bytes.
func (g *MarotoLabelRenderer) RenderBoxLabel(label ports.BoxLabel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de caja "+label.BoxCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receptionRow(label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(contentRows(label.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(label))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(label ports.BoxLabel) core.Row {
	return row.New(36).Add(
		col.New(8).Add(
			text.New("CAJA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(label.BoxCode, props.Text{Style: fontstyle.Bold, Size: 18, Top: 8}),
			text.New("Estado: "+statusLabel(label.Status), props.Text{Size: 9, Top: 20, Color: colorGray}),
			text.New("Tienda: "+nonEmpty(label.StoreName, "sin asignar"), props.Text{Size: 9, Top: 26, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(label.BoxCode, props.Rect{Percent: 95, Center: true})),
	)
}

func receptionRow(label ports.BoxLabel) core.Row {
	received := "-"
	if !label.ReceivedDate.IsZero() {
		received = label.ReceivedDate.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Proveedor: %s   |   PO: %s   |   DO: %s",
				nonEmpty(label.Supplier, "-"),
				nonEmpty(label.PONumber, "-"),
				nonEmpty(label.DONumber, "-"),
			), props.Text{Size: 8, Top: 6}),
			text.New(fmt.Sprintf("Recibida: %s   |   Por: %s", received, nonEmpty(label.ReceivedBy, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("QR", 2, align.Center),
		h("SKU / Código", 5, align.Left),
		h("Talla", 2, align.Center),
		h("Color", 2, align.Center),
		h("Cant.", 1, align.Right),
	)
}

// contentRows una fila por línea con el QR de la variante.
func contentRows(lines []ports.BoxLabelLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(20).Add(
			col.New(2).Add(code.NewQr(l.QRCode, props.Rect{Percent: 90, Center: true})),
			col.New(5).Add(
				text.New(l.SKU, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
				text.New(l.QRCode, props.Text{Size: 7, Top: 11, Color: colorGray}),
			),
			col.New(2).Add(text.New(nonEmpty(l.Size, "-"), props.Text{Size: 9, Align: align.Center, Top: 7})),
			col.New(2).Add(text.New(nonEmpty(l.Color, "-"), props.Text{Size: 9, Align: align.Center, Top: 7})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 9, Align: align.Right, Top: 7})),
		))
	}
	return rows
}

func totalRow(label ports.BoxLabel) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New(fmt.Sprintf("%d línea(s)", len(label.Lines)), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("TOTAL: %d", label.TotalItems), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func statusLabel(status string) string {
	switch status {
	case "pending_checkin":
		return "pendiente de ingreso"
	case "checked_in":
		return "ingresada"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
