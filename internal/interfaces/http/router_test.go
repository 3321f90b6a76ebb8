package http_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

func TestLogin(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.json(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "tecnico1", Password: "t1-pass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleTecnico, out.Role)

	me := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	me.Header.Set("Authorization", "Bearer "+out.Token)
	meResp := s.do(t, me, "")
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	var who dto.MeResponse
	decode(t, meResp, &who)
	assert.Equal(t, "tecnico1", who.Username)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.json(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "tecnico1", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))

	resp = s.json(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.json(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateWarranty_MultipartConImagen(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.multipart(t, "/api/garantias", "tecnico1", map[string]string{
		"cliente":           "Ana Gómez",
		"producto":          "Impresora",
		"descripcion_falla": "No imprime",
	}, formFile{field: "imagen", name: "foto.JPG", content: []byte("jpeg")})

	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var out dto.CreateWarrantyResponse
	decode(t, resp, &out)
	assert.Equal(t, "Recibido", out.Status)
	assert.Equal(t, "tecnico1", out.AssignedUser)
	assert.Equal(t, "Impresora", out.ProductType)
	assert.Regexp(t, `^/uploads/[0-9a-f]{32}\.jpg$`, out.ImagePath)
	assert.False(t, out.EmailSent)
	assert.Len(t, s.files.Names(), 1)
}

func TestCreateWarranty_CamposRequeridos(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.multipart(t, "/api/garantias", "tecnico1", map[string]string{"cliente": "Ana"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestCreateWarranty_SinToken(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.multipart(t, "/api/garantias", "", map[string]string{"cliente": "Ana"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateWarranty_ConEmailNotifica(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.multipart(t, "/api/garantias", "lector", map[string]string{
		"cliente":           "Ana",
		"email":             "ana@example.com",
		"tipo_producto":     "Nevera",
		"descripcion_falla": "No enfría",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CreateWarrantyResponse
	decode(t, resp, &out)
	assert.True(t, out.EmailSent)
	assert.Equal(t, "lector", out.AssignedUser)
	require.Len(t, s.notifier.Notices, 1)
}

func TestChangeStatus_PropiedadDelTecnico(t *testing.T) {
	s := newServer(t, serverOpts{})
	id := s.createWarranty(t, "tecnico1", nil)
	path := fmt.Sprintf("/api/garantias/%d/estado", id)

	resp := s.json(t, http.MethodPatch, path, "tecnico2", dto.ChangeStatusRequest{Status: "Reparado"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodPatch, path, "lector", dto.ChangeStatusRequest{Status: "Reparado"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodPatch, path, "tecnico1", dto.ChangeStatusRequest{Status: "Reparado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.WarrantyResponse
	decode(t, resp, &out)
	assert.Equal(t, "Reparado", out.Status)
}

func TestUpdateAmount_YReasignar(t *testing.T) {
	s := newServer(t, serverOpts{})
	id := s.createWarranty(t, "tecnico1", nil)

	amount := "150000"
	resp := s.json(t, http.MethodPatch, fmt.Sprintf("/api/garantias/%d/valor", id), "tecnico1", dto.UpdateAmountRequest{Amount: &amount})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	bad := "-3"
	resp = s.json(t, http.MethodPatch, fmt.Sprintf("/api/garantias/%d/valor", id), "tecnico1", dto.UpdateAmountRequest{Amount: &bad})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.json(t, http.MethodPatch, fmt.Sprintf("/api/garantias/%d/asignar", id), "tecnico1", dto.ReassignRequest{Username: "fantasma"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.json(t, http.MethodPatch, fmt.Sprintf("/api/garantias/%d/asignar", id), "tecnico1", dto.ReassignRequest{Username: "tecnico2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Tras reasignar, tecnico1 ya no es dueño.
	resp = s.json(t, http.MethodPatch, fmt.Sprintf("/api/garantias/%d/estado", id), "tecnico1", dto.ChangeStatusRequest{Status: "Listo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateAmount_NumeroJSON(t *testing.T) {
	s := newServer(t, serverOpts{})
	id := s.createWarranty(t, "tecnico1", nil)
	path := fmt.Sprintf("/api/garantias/%d/valor", id)

	resp := s.json(t, http.MethodPatch, path, "tecnico1", map[string]any{"valor_cobrado": 150000})
	require.Equal(t, http.StatusOK, resp.StatusCode, readBody(t, resp))
	w, err := s.store.Warranties().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, w.ChargedAmount)
	assert.Equal(t, "150000", w.ChargedAmount.String())

	resp = s.json(t, http.MethodPatch, path, "tecnico1", map[string]any{"valor_cobrado": nil})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	w, err = s.store.Warranties().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, w.ChargedAmount, "null borra el valor")

	resp = s.json(t, http.MethodPatch, path, "tecnico1", map[string]any{"valor_cobrado": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWarranty_NoExiste(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.json(t, http.MethodGet, "/api/garantias/999", "lector", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/garantias/abc", "lector", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListWarranties_Filtros(t *testing.T) {
	s := newServer(t, serverOpts{})
	s.createWarranty(t, "tecnico1", map[string]string{"cliente": "Ana"})
	s.createWarranty(t, "tecnico2", map[string]string{"cliente": "Luis", "serial": "ZZ-1"})

	resp := s.json(t, http.MethodGet, "/api/garantias", "lector", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.WarrantyResponse
	decode(t, resp, &all)
	require.Len(t, all, 2)
	assert.Greater(t, all[0].ID, all[1].ID)

	resp = s.json(t, http.MethodGet, "/api/garantias?usuario_asignado=tecnico2", "lector", nil)
	var mine []dto.WarrantyResponse
	decode(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Luis", mine[0].ClientName)

	resp = s.json(t, http.MethodGet, "/api/garantias?q=zz-1", "lector", nil)
	var found []dto.WarrantyResponse
	decode(t, resp, &found)
	require.Len(t, found, 1)
}

func TestComments(t *testing.T) {
	s := newServer(t, serverOpts{})
	id := s.createWarranty(t, "tecnico1", nil)
	path := fmt.Sprintf("/api/garantias/%d/comentarios", id)

	resp := s.multipart(t, path, "lector", map[string]string{"texto": "Cliente llamó"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var added dto.AddCommentResponse
	decode(t, resp, &added)
	assert.Equal(t, "Comentario agregado", added.Message)
	assert.Equal(t, "lector", added.Comment.Author)

	resp = s.multipart(t, path, "tecnico1", map[string]string{"texto": "Repuesto pedido"},
		formFile{field: "archivo", name: "cotizacion.pdf", content: []byte("%PDF")})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.multipart(t, path, "tecnico1", map[string]string{"texto": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.json(t, http.MethodGet, path, "tecnico2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CommentResponse
	decode(t, resp, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Cliente llamó", list[0].Text)
	assert.NotEmpty(t, list[1].AttachmentPath)
}

func TestReceipts(t *testing.T) {
	s := newServer(t, serverOpts{})
	id := s.createWarranty(t, "tecnico1", nil)

	resp := s.json(t, http.MethodGet, fmt.Sprintf("/api/garantias/%d/recibo", id), "lector", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), fmt.Sprintf("%06d", id))

	resp = s.json(t, http.MethodGet, fmt.Sprintf("/api/garantias/%d/recibo/pdf", id), "lector", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("recibo_garantia_%d.pdf", id))
	assert.True(t, bytes.HasPrefix([]byte(readBody(t, resp)), []byte("%PDF")))

	resp = s.json(t, http.MethodGet, "/api/garantias/999/recibo", "lector", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExport_SoloAdmin(t *testing.T) {
	s := newServer(t, serverOpts{})
	s.createWarranty(t, "tecnico1", nil)

	resp := s.json(t, http.MethodGet, "/api/garantias/export", "tecnico1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/garantias/export", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "garantias_export_20240310103000.xlsx")
}

func TestUsers_AdminYCuentaProtegida(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.json(t, http.MethodGet, "/api/usuarios", "tecnico1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodPost, "/api/usuarios", "admin", dto.CreateUserRequest{Username: "nuevo", Password: "p"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.UserResponse
	decode(t, resp, &created)
	assert.Equal(t, entity.RoleTecnico, created.Role)

	resp = s.json(t, http.MethodPost, "/api/usuarios", "admin", dto.CreateUserRequest{Username: "nuevo", Password: "p"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.json(t, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", userID(t, s, "admin")), "admin", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "PROTECTED_ACCOUNT", errorCode(t, resp))

	consulta := entity.RoleConsulta
	resp = s.json(t, http.MethodPut, fmt.Sprintf("/api/usuarios/%d", userID(t, s, "admin")), "admin", dto.UpdateUserRequest{Role: &consulta})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", created.ID), "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.json(t, http.MethodDelete, "/api/usuarios/9999", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConfiguracion(t *testing.T) {
	s := newServer(t, serverOpts{})

	resp := s.json(t, http.MethodGet, "/api/configuracion", "tecnico1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	name := "PC Tintas"
	resp = s.json(t, http.MethodPut, "/api/configuracion", "admin", dto.UpdateCompanyRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.multipart(t, "/api/configuracion/logo", "admin", nil, formFile{field: "logo", name: "logo.png", content: []byte("png")})
	require.Equal(t, http.StatusOK, resp.StatusCode, readBody(t, resp))
	var cfg dto.CompanyResponse
	decode(t, resp, &cfg)
	assert.Equal(t, "PC Tintas", cfg.Name)
	assert.Equal(t, "/uploads/logo_empresa.png", cfg.LogoPath)

	resp = s.multipart(t, "/api/configuracion/logo", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/estados", "lector", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st dto.StatusesResponse
	decode(t, resp, &st)
	assert.Equal(t, "Recibido", st.Initial)
	assert.NotEmpty(t, st.Statuses)
}

func TestResetData(t *testing.T) {
	disabled := newServer(t, serverOpts{})
	resp := disabled.json(t, http.MethodPost, "/api/admin/limpiar-datos", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	s := newServer(t, serverOpts{enableReset: true})
	s.createWarranty(t, "tecnico1", nil)
	s.files.Put("huerfano.jpg", []byte("x"))

	resp = s.json(t, http.MethodPost, "/api/admin/limpiar-datos", "tecnico1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodPost, "/api/admin/limpiar-datos", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ResetResponse
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Warranties)
	assert.Equal(t, 1, out.Files)
	assert.Empty(t, s.files.Names())
}

func TestHealthYMetrics(t *testing.T) {
	s := newServer(t, serverOpts{})
	s.createWarranty(t, "tecnico1", nil)

	resp := s.json(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "garantias_claims_created_total 1")
	assert.Contains(t, body, `route="/api/garantias"`)
}
