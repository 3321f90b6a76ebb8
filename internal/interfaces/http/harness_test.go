package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/application/auth"
	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/application/maintenance"
	"github.com/jhoicas/Garantias-api/internal/application/usecase"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/receipt"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/Garantias-api/internal/interfaces/http"
	"github.com/jhoicas/Garantias-api/internal/testutil"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type server struct {
	app      *fiber.App
	store    *testutil.Store
	files    *testutil.Files
	notifier *testutil.Notifier
	clock    *testclock.Clock
	authUC   *auth.AuthUseCase
	metrics  *metrics.Metrics
}

type serverOpts struct {
	enableReset bool
}

func newServer(t *testing.T, opts serverOpts) *server {
	t.Helper()
	store := testutil.NewStore()
	files := testutil.NewFiles()
	notifier := &testutil.Notifier{}
	clk := testclock.NewClock(time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC))
	m := metrics.New()

	testutil.SeedUser(t, store, "admin", entity.RoleAdmin, "admin-pass")
	testutil.SeedUser(t, store, "tecnico1", entity.RoleTecnico, "t1-pass")
	testutil.SeedUser(t, store, "tecnico2", entity.RoleTecnico, "t2-pass")
	testutil.SeedUser(t, store, "lector", entity.RoleConsulta, "l-pass")

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, Issuer: "garantias-test"}, clk, nil)
	companyUC := usecase.NewCompanyUseCase(store.Company(), files, nil, clk)
	html, err := receipt.NewHTMLRenderer()
	require.NoError(t, err)

	deps := apphttp.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(store.Users(), clk),
		CompanyUC: companyUC,
		WarrantyUC: warranty.NewUseCase(warranty.Deps{
			Warranties: store.Warranties(),
			Comments:   store.Comments(),
			Users:      store.Users(),
			Files:      files,
			Company:    companyUC,
			Notifier:   notifier,
			Clock:      clk,
		}),
		DocumentsUC: documents.NewUseCase(
			store.Warranties(), companyUC, files,
			html, pdf.NewMarotoReceiptGenerator(), spreadsheet.NewExcelExporter(), clk,
		),
		Metrics:     m,
		ServiceName: "garantias-test",
	}
	if opts.enableReset {
		deps.ResetUC = maintenance.NewResetUseCase(store, store.Company(), files, nil)
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return &server{app: app, store: store, files: files, notifier: notifier, clock: clk, authUC: authUC, metrics: m}
}

// token emite un token válido para username.
func (s *server) token(t *testing.T, username string) string {
	t.Helper()
	tok, err := s.authUC.IssueToken(username)
	require.NoError(t, err)
	return tok
}

func (s *server) do(t *testing.T, req *http.Request, username string) *http.Response {
	t.Helper()
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(t, username))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *server) json(t *testing.T, method, path, username string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return s.do(t, req, username)
}

type formFile struct {
	field, name string
	content     []byte
}

func (s *server) multipart(t *testing.T, path, username string, fields map[string]string, files ...formFile) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(t, req, username)
}

// createWarranty registra una garantía como username y devuelve su id.
func (s *server) createWarranty(t *testing.T, username string, extra map[string]string) int64 {
	t.Helper()
	fields := map[string]string{
		"cliente":           "Ana Gómez",
		"tipo_producto":     "Impresora",
		"marca":             "Epson",
		"modelo":            "L3250",
		"serial":            "X7Y8Z9",
		"descripcion_falla": "No imprime",
	}
	for k, v := range extra {
		fields[k] = v
	}
	resp := s.multipart(t, "/api/garantias", username, fields)
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var out struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &out)
	return out.ID
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body = io.NopCloser(bytes.NewReader(b))
	return string(b)
}

func userID(t *testing.T, s *server, username string) int64 {
	t.Helper()
	u, err := s.store.Users().GetByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID
}
