package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/application/usecase"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/testutil"
)

type captureRenderer struct {
	views []documents.ReceiptView
	rows  [][]*entity.Warranty
}

func (c *captureRenderer) RenderReceiptHTML(v documents.ReceiptView) ([]byte, error) {
	c.views = append(c.views, v)
	return []byte("<html>" + v.Number + "</html>"), nil
}

func (c *captureRenderer) GenerateReceiptPDF(v documents.ReceiptView) ([]byte, error) {
	c.views = append(c.views, v)
	return []byte("%PDF-" + v.Number), nil
}

func (c *captureRenderer) ExportWarranties(items []*entity.Warranty) ([]byte, error) {
	c.rows = append(c.rows, items)
	return []byte("xlsx"), nil
}

func newDocs(t *testing.T) (*documents.UseCase, *testutil.Store, *captureRenderer) {
	t.Helper()
	store := testutil.NewStore()
	files := testutil.NewFiles()
	clk := testclock.NewClock(time.Date(2024, 1, 1, 2, 5, 9, 0, time.UTC))
	company := usecase.NewCompanyUseCase(store.Company(), files, nil, clk)
	r := &captureRenderer{}
	return documents.NewUseCase(store.Warranties(), company, files, r, r, r, clk), store, r
}

func seedWarranty(t *testing.T, store *testutil.Store, assigned string) *entity.Warranty {
	t.Helper()
	amount := decimal.NewFromInt(150000)
	w := &entity.Warranty{
		ClientName:       "Ana",
		ProductType:      "Impresora",
		Model:            "L3250",
		FaultDescription: "No imprime",
		Status:           entity.StatusRecibido,
		AssignedUser:     assigned,
		ChargedAmount:    &amount,
		CreatedAt:        time.Date(2023, 12, 30, 20, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Warranties().Create(context.Background(), w))
	return w
}

func TestRenderReceipt_CualquierUsuarioCualquierGarantia(t *testing.T) {
	uc, store, r := newDocs(t)
	w := seedWarranty(t, store, "tecnico1")
	otro := policy.Actor{Username: "tecnico2", Role: entity.RoleTecnico}

	html, err := uc.RenderReceiptHTML(context.Background(), otro, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo_garantia_1.html", html.Name)
	assert.Equal(t, documents.MimeHTML, html.ContentType)

	pdf, err := uc.RenderReceiptPDF(context.Background(), policy.Actor{Username: "lector", Role: entity.RoleConsulta}, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo_garantia_1.pdf", pdf.Name)

	v := r.views[0]
	assert.Equal(t, "000001", v.Number)
	assert.Equal(t, "Impresora L3250", v.ProductDescription)
	assert.Equal(t, "$ 150.000", v.Amount)
	assert.Equal(t, "30/12/2023 15:00", v.RegisteredAt)
	assert.Equal(t, "31/12/2023 21:05", v.IssuedAt)
	assert.Equal(t, entity.DefaultCompanyName, v.CompanyName)
	assert.Equal(t, documents.Disclaimer, v.Disclaimer)
}

func TestRenderReceipt_NoEncontrada(t *testing.T) {
	uc, _, _ := newDocs(t)

	_, err := uc.RenderReceiptHTML(context.Background(), policy.Actor{Username: "admin", Role: entity.RoleAdmin}, 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportAll_SoloAdminOrdenDescYSello(t *testing.T) {
	uc, store, r := newDocs(t)
	seedWarranty(t, store, "a")
	seedWarranty(t, store, "b")
	ctx := context.Background()

	_, err := uc.ExportAll(ctx, policy.Actor{Username: "tecnico1", Role: entity.RoleTecnico})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	file, err := uc.ExportAll(ctx, policy.Actor{Username: "admin", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "garantias_export_20231231210509.xlsx", file.Name)
	assert.Equal(t, documents.MimeXLSX, file.ContentType)
	require.Len(t, r.rows, 1)
	require.Len(t, r.rows[0], 2)
	assert.Equal(t, int64(2), r.rows[0][0].ID)
}

func TestFormatCOP(t *testing.T) {
	assert.Equal(t, "$ 0", documents.FormatCOP(decimal.Zero))
	assert.Equal(t, "$ 999", documents.FormatCOP(decimal.NewFromInt(999)))
	assert.Equal(t, "$ 1.000.000", documents.FormatCOP(decimal.NewFromInt(1000000)))
	assert.Equal(t, "$ 1.234,50", documents.FormatCOP(decimal.RequireFromString("1234.5")))
}

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "000042", documents.ReceiptNumber(42))
	assert.Equal(t, "1234567", documents.ReceiptNumber(1234567))
}
