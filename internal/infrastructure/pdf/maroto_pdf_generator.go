// Package pdf genera la representación imprimible de una factura de la agencia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  AGENCIA: Nombre + Dirección + Tel │ Timbrado / RUC / N°    │
//	│  Fecha de emisión | Condición de venta                      │
//	│  CLIENTE: Nombre + RUC                                      │
//	│  DETALLES: Descripción | Cant. | P. Unit. | IVA | Total     │
//	│  TOTALES: Exento / IVA 5% / IVA 10% / Total (PYG)           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/pkg/guarani"
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 86, Blue: 63}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Issuer datos de la agencia emisora.
type Issuer struct {
	Name          string
	Address       string
	Phone         string
	RUC           string
	Timbrado      string
	TimbradoStart string
}

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer Issuer
}

// NewMarotoPDFGenerator construye el generador con los datos de la agencia.
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// Generate arma el PDF de la factura. Los totales se recalculan a partir del detalle.
func (g *MarotoPDFGenerator) Generate(inv *entity.StoredInvoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Header.DocumentNumber, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(inv.Header))
	m.AddRows(sectionTitle("Datos del Cliente"))
	m.AddRows(customerRow(inv.Header))

	m.AddRows(sectionTitle("Detalles"))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(inv.Details)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("Totales"))
	m.AddRows(totalsRows(inv.Totals())...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: agencia (izq) y timbrado / RUC / N° de factura (der).
func (g *MarotoPDFGenerator) headerRow(inv *entity.StoredInvoice) core.Row {
	right := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 8, Align: align.Right, Top: top}
		if bold {
			p.Style = fontstyle.Bold
		}
		return text.New(s, p)
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(g.issuer.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Dirección: "+nonEmpty(g.issuer.Address, "-"), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("Teléfono: "+nonEmpty(g.issuer.Phone, "-"), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			right("Timbrado Nº: "+nonEmpty(g.issuer.Timbrado, "-"), 1, false),
			right("Inicio de Vigencia: "+nonEmpty(g.issuer.TimbradoStart, "-"), 6, false),
			right("RUC: "+nonEmpty(g.issuer.RUC, "-"), 11, false),
			right(documentTitle(inv.Header.DocumentType)+": "+inv.Header.DocumentNumber, 17, true),
		),
	)
}

func infoRow(h invoice.Header) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("Fecha de Emisión: "+h.Date, props.Text{Size: 9, Top: 2})),
		col.New(6).Add(text.New("Condición de Venta: "+conditionLabel(h.Condition), props.Text{Size: 9, Top: 2, Align: align.Right})),
	)
}

func customerRow(h invoice.Header) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Nombre: "+h.Customer, props.Text{Size: 9, Top: 1}),
			text.New("RUC: "+nonEmpty(h.RUC, "-"), props.Text{Size: 9, Top: 6, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 5, align.Left),
		h("Cantidad", 1, align.Center),
		h("Precio Unitario", 2, align.Right),
		h("IVA", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de detalle.
func tableDetailRows(details []invoice.Detail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(nonEmpty(d.Description, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(guarani.FormatStoredNumber(d.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(pyg(d.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(d.TaxCategory.Label(), "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(pyg(d.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRows(t invoice.Totals) []core.Row {
	r := func(label string, v decimal.Decimal, grand bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
			lp.Size, lp.Color = 10, colorPrimary
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, lp)),
			col.New(3).Add(text.New(pyg(v), p)),
		)
	}
	return []core.Row{
		r(invoice.LabelExempt+":", t.Exempt, false),
		r(invoice.Label5+":", t.Tax5, false),
		r(invoice.Label10+":", t.Tax10, false),
		r("Total:", t.Total, true),
	}
}

// pyg: "1.250.000 PYG".
func pyg(v decimal.Decimal) string {
	return guarani.FormatStoredNumber(v.Round(0)) + " PYG"
}

func documentTitle(t invoice.DocumentType) string {
	if t == invoice.DocumentReceipt {
		return "Recibo"
	}
	return "Factura"
}

func conditionLabel(c invoice.Condition) string {
	switch c {
	case invoice.ConditionCash:
		return "Contado"
	case invoice.ConditionCredit:
		return "Crédito"
	}
	return string(c)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
