package documents

import "github.com/jhoicas/Garantias-api/internal/domain/entity"

// ReceiptView datos ya formateados que se imprimen en el recibo.
type ReceiptView struct {
	Number       string // id con ceros a la izquierda, ej. 000042
	WarrantyID   int64
	RegisteredAt string
	IssuedAt     string

	ClientName string
	IDDocument string
	Phone      string
	Email      string

	ProductDescription string
	Serial             string
	InvoiceRef         string
	PurchaseDate       string
	Fault              string
	Status             string
	Technician         string
	Amount             string // vacío si no hay valor cobrado

	CompanyName    string
	CompanyNIT     string
	CompanyPhone   string
	CompanyEmail   string
	CompanyAddress string
	CompanyCity    string
	LogoURL        string // ruta pública, para HTML
	LogoFile       string // ruta en disco, para PDF; vacío si no existe

	Disclaimer string
}

// ReceiptHTMLRenderer genera el recibo como documento HTML.
type ReceiptHTMLRenderer interface {
	RenderReceiptHTML(view ReceiptView) ([]byte, error)
}

// ReceiptPDFGenerator genera el recibo como PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(view ReceiptView) ([]byte, error)
}

// SpreadsheetExporter serializa garantías a una hoja de cálculo (una fila por garantía,
// en el orden recibido).
type SpreadsheetExporter interface {
	ExportWarranties(items []*entity.Warranty) ([]byte, error)
}
