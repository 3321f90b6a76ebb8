package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/receipt"
)

func TestRenderReceiptHTML(t *testing.T) {
	r, err := receipt.NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.RenderReceiptHTML(documents.ReceiptView{
		Number:             "000007",
		ClientName:         "Ana Pérez",
		ProductDescription: "Licuadora Oster",
		Status:             "Recibido",
		Technician:         "tecnico1",
		Amount:             "$ 150.000",
		CompanyName:        "JD Soluciones",
		LogoURL:            "/uploads/logo_empresa.png",
		Disclaimer:         documents.Disclaimer,
	})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "N° 000007")
	assert.Contains(t, html, "Ana Pérez")
	assert.Contains(t, html, "$ 150.000")
	assert.Contains(t, html, `src="/uploads/logo_empresa.png"`)
}

func TestRenderReceiptHTML_EscapaValores(t *testing.T) {
	r, err := receipt.NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.RenderReceiptHTML(documents.ReceiptView{ClientName: "<script>alert(1)</script>"})
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>alert(1)</script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestRenderReceiptHTML_SinLogo(t *testing.T) {
	r, err := receipt.NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.RenderReceiptHTML(documents.ReceiptView{Number: "000001"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<img")
}
