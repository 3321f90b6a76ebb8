// Package receipt renderiza el recibo de garantía como página HTML imprimible.
package receipt

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
)

//go:embed templates/recibo.html
var templatesFS embed.FS

var _ documents.ReceiptHTMLRenderer = (*HTMLRenderer)(nil)

// HTMLRenderer implementa documents.ReceiptHTMLRenderer con html/template.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parsea la plantilla embebida.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/recibo.html")
	if err != nil {
		return nil, fmt.Errorf("receipt: parsear plantilla: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// RenderReceiptHTML ejecuta la plantilla. Los valores se escapan.
func (r *HTMLRenderer) RenderReceiptHTML(v documents.ReceiptView) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("receipt: ejecutar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}
