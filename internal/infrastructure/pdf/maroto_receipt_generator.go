// Package pdf implementa el recibo de garantía en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Empresa + NIT  │  Recibo N° + Fechas + QR   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Cédula / Teléfono / Email                 │
//	│  PRODUCTO: Descripción / Serial / Factura / Fecha compra     │
//	│  FALLA REPORTADA                                             │
//	│  ESTADO + Técnico asignado + Valor cobrado                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONDICIONES + firmas                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ documents.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa documents.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(v documents.ReceiptView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de garantía "+v.Number, true).
		WithAuthor(v.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(v))
	m.AddRows(productRows(v)...)
	m.AddRows(faultRows(v)...)
	m.AddRows(statusRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRows(v)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + empresa (izq) y N° de recibo + fechas + QR (der).
func headerRow(v documents.ReceiptView) core.Row {
	logo := existingFile(v.LogoFile)
	companySize := 6
	if logo != "" {
		companySize = 4
	}
	companyCol := col.New(companySize).Add(
		text.New(v.CompanyName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("NIT: "+nonEmpty(v.CompanyNIT, "-"), props.Text{Size: 8, Top: 8, Color: colorGray}),
		text.New(fmt.Sprintf("%s %s", nonEmpty(v.CompanyAddress, ""), nonEmpty(v.CompanyCity, "")), props.Text{
			Size: 8, Top: 12, Color: colorGray,
		}),
		text.New(fmt.Sprintf("Tel: %s   |   %s", nonEmpty(v.CompanyPhone, "-"), nonEmpty(v.CompanyEmail, "-")), props.Text{
			Size: 8, Top: 16, Color: colorGray,
		}),
	)
	receiptCol := col.New(4).Add(
		text.New("RECIBO DE GARANTÍA", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New("N° "+v.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Registro: "+v.RegisteredAt, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		text.New("Emisión: "+v.IssuedAt, props.Text{Size: 8, Align: align.Right, Top: 17, Color: colorGray}),
	)
	qrCol := col.New(2).Add(code.NewQr("GARANTIA-"+v.Number, props.Rect{Percent: 90, Center: true}))

	if logo != "" {
		return row.New(24).Add(
			image.NewFromFileCol(2, logo, props.Rect{Percent: 90, Center: true}),
			companyCol,
			receiptCol,
			qrCol,
		)
	}
	return row.New(24).Add(companyCol, receiptCol, qrCol)
}

// clientRow: datos del cliente.
func clientRow(v documents.ReceiptView) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			sectionTitle("CLIENTE"),
			text.New(v.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Cédula/NIT: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(v.IDDocument, "-"),
				nonEmpty(v.Phone, "-"),
				nonEmpty(v.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// productRows: producto y soporte de compra.
func productRows(v documents.ReceiptView) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(sectionTitle("PRODUCTO"))),
		row.New(6).Add(
			field(6, "Producto", v.ProductDescription),
			field(6, "Serial", v.Serial),
		),
		row.New(6).Add(
			field(6, "Factura", v.InvoiceRef),
			field(6, "Fecha de compra", v.PurchaseDate),
		),
	}
}

// faultRows: falla reportada en una o más líneas.
func faultRows(v documents.ReceiptView) []core.Row {
	rows := []core.Row{row.New(6).Add(col.New(12).Add(sectionTitle("FALLA REPORTADA")))}
	for _, chunk := range splitEvery(nonEmpty(v.Fault, "-"), 110) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8.5, Top: 0.5}),
		)))
	}
	return rows
}

// statusRow: estado, técnico y valor cobrado.
func statusRow(v documents.ReceiptView) core.Row {
	return row.New(12).Add(
		field(4, "Estado", v.Status),
		field(4, "Técnico asignado", v.Technician),
		field(4, "Valor cobrado", v.Amount),
	)
}

// footerRows: condiciones y firmas.
func footerRows(v documents.ReceiptView) []core.Row {
	rows := []core.Row{row.New(6).Add(col.New(12).Add(sectionTitle("CONDICIONES")))}
	for _, chunk := range splitEvery(v.Disclaimer, 130) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 7, Color: colorGray}),
		)))
	}
	rows = append(rows,
		row.New(16),
		row.New(6).Add(
			col.New(5).Add(text.New("_______________________________", props.Text{Align: align.Center})),
			col.New(2),
			col.New(5).Add(text.New("_______________________________", props.Text{Align: align.Center})),
		),
		row.New(5).Add(
			col.New(5).Add(text.New("Firma cliente", props.Text{Size: 8, Align: align.Center, Color: colorGray})),
			col.New(2),
			col.New(5).Add(text.New("Recibido por", props.Text{Size: 8, Align: align.Center, Color: colorGray})),
		),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
}

func field(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 7.5, Top: 1}),
		text.New(nonEmpty(value, "-"), props.Text{Size: 8.5, Top: 5}),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// existingFile devuelve p si es un archivo legible; "" en otro caso.
func existingFile(p string) string {
	if p == "" {
		return ""
	}
	if st, err := os.Stat(p); err != nil || st.IsDir() {
		return ""
	}
	return p
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
