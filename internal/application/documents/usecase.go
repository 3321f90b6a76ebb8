// Package documents genera los documentos descargables: recibo de garantía
// (HTML y PDF) y la exportación completa a hoja de cálculo.
package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// Disclaimer párrafo fijo de condiciones que se imprime en todo recibo.
const Disclaimer = "La garantía cubre únicamente defectos de fabricación y no aplica por mal uso, " +
	"golpes, humedad, variaciones de voltaje, manipulación por terceros o sellos alterados. " +
	"El diagnóstico puede tardar hasta 15 días hábiles. Pasados 30 días desde la notificación de " +
	"reparación o rechazo sin que el equipo sea reclamado, la empresa no se hace responsable por él. " +
	"Presente este recibo para retirar el producto."

const (
	// MimePDF tipo de contenido del recibo PDF.
	MimePDF = "application/pdf"
	// MimeHTML tipo de contenido del recibo HTML.
	MimeHTML = "text/html; charset=utf-8"
	// MimeXLSX tipo de contenido de la exportación.
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CompanyProvider devuelve la configuración vigente de la empresa (o los valores por defecto).
type CompanyProvider interface {
	Config(ctx context.Context) (*entity.CompanyConfig, error)
}

// File documento generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// UseCase genera recibos y exportaciones. Operaciones de solo lectura.
type UseCase struct {
	warranties  repository.WarrantyRepository
	company     CompanyProvider
	files       ports.FileStore
	html        ReceiptHTMLRenderer
	pdf         ReceiptPDFGenerator
	spreadsheet SpreadsheetExporter
	clock       clock.Clock
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	warranties repository.WarrantyRepository,
	company CompanyProvider,
	files ports.FileStore,
	html ReceiptHTMLRenderer,
	pdf ReceiptPDFGenerator,
	spreadsheet SpreadsheetExporter,
	clk clock.Clock,
) *UseCase {
	return &UseCase{
		warranties:  warranties,
		company:     company,
		files:       files,
		html:        html,
		pdf:         pdf,
		spreadsheet: spreadsheet,
		clock:       clk,
	}
}

// RenderReceiptHTML recibo HTML de cualquier garantía (sin control de propiedad).
func (uc *UseCase) RenderReceiptHTML(ctx context.Context, actor policy.Actor, id int64) (*File, error) {
	view, err := uc.receiptView(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.html.RenderReceiptHTML(*view)
	if err != nil {
		return nil, fmt.Errorf("recibo html: %w", err)
	}
	return &File{Name: fmt.Sprintf("recibo_garantia_%d.html", id), ContentType: MimeHTML, Content: content}, nil
}

// RenderReceiptPDF recibo PDF de cualquier garantía (sin control de propiedad).
func (uc *UseCase) RenderReceiptPDF(ctx context.Context, actor policy.Actor, id int64) (*File, error) {
	view, err := uc.receiptView(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.GenerateReceiptPDF(*view)
	if err != nil {
		return nil, fmt.Errorf("recibo pdf: %w", err)
	}
	return &File{Name: fmt.Sprintf("recibo_garantia_%d.pdf", id), ContentType: MimePDF, Content: content}, nil
}

// ExportAll exporta todas las garantías (id descendente). Solo admin.
func (uc *UseCase) ExportAll(ctx context.Context, actor policy.Actor) (*File, error) {
	if err := policy.Authorize(actor, policy.ActionExport, ""); err != nil {
		return nil, err
	}
	items, err := uc.warranties.List(ctx, repository.WarrantyFilter{})
	if err != nil {
		return nil, err
	}
	content, err := uc.spreadsheet.ExportWarranties(items)
	if err != nil {
		return nil, fmt.Errorf("exportar garantías: %w", err)
	}
	name := "garantias_export_" + timeutil.Stamp(timeutil.Now(uc.clock)) + ".xlsx"
	return &File{Name: name, ContentType: MimeXLSX, Content: content}, nil
}

func (uc *UseCase) receiptView(ctx context.Context, actor policy.Actor, id int64) (*ReceiptView, error) {
	if err := policy.Authorize(actor, policy.ActionRenderReceipt, ""); err != nil {
		return nil, err
	}
	w, err := uc.warranties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: garantía %d", domain.ErrNotFound, id)
	}
	company, err := uc.company.Config(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReceiptView(w, company, timeutil.Now(uc.clock).Format(timeutil.DateTimeLayout), uc.files), nil
}

// BuildReceiptView arma la vista del recibo. company nil usa los valores por defecto.
// files puede ser nil; solo se usa para ubicar el logo en disco.
func BuildReceiptView(w *entity.Warranty, company *entity.CompanyConfig, issuedAt string, files ports.FileStore) *ReceiptView {
	if company == nil {
		company = entity.DefaultCompanyConfig()
	}
	v := &ReceiptView{
		Number:             ReceiptNumber(w.ID),
		WarrantyID:         w.ID,
		RegisteredAt:       timeutil.In(w.CreatedAt).Format(timeutil.DateTimeLayout),
		IssuedAt:           issuedAt,
		ClientName:         w.ClientName,
		IDDocument:         w.IDDocument,
		Phone:              w.Phone,
		Email:              w.Email,
		ProductDescription: w.ProductDescription(),
		Serial:             w.Serial,
		InvoiceRef:         w.InvoiceRef,
		PurchaseDate:       w.PurchaseDate,
		Fault:              w.FaultDescription,
		Status:             string(w.Status),
		Technician:         w.AssignedUser,
		CompanyName:        company.Name,
		CompanyNIT:         company.NIT,
		CompanyPhone:       company.Phone,
		CompanyEmail:       company.Email,
		CompanyAddress:     company.Address,
		CompanyCity:        company.City,
		LogoURL:            company.LogoPath,
		Disclaimer:         Disclaimer,
	}
	if w.ChargedAmount != nil {
		v.Amount = FormatCOP(*w.ChargedAmount)
	}
	if files != nil && company.LogoPath != "" {
		if local, ok := files.Resolve(company.LogoPath); ok {
			v.LogoFile = local
		}
	}
	return v
}

// ReceiptNumber número de recibo: id con seis dígitos.
func ReceiptNumber(id int64) string {
	return fmt.Sprintf("%06d", id)
}

// FormatCOP formatea un valor en pesos: puntos de miles y coma decimal solo si hay centavos.
// Ej: 150000 → "$ 150.000", 1234.5 → "$ 1.234,50".
func FormatCOP(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "$ " + sign + groupThousands(intPart)
	if frac != "00" {
		out += "," + frac
	}
	return out
}

// groupThousands inserta puntos de miles: "1000000" → "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
