package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
)

func TestClaimCreated_CuentaAvisos(t *testing.T) {
	m := metrics.New()

	m.ClaimCreated(false, false)
	m.ClaimCreated(true, true)
	m.ClaimCreated(true, false)

	n, err := testutil.GatherAndCount(m.Registry(), "garantias_claims_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	body := scrape(t, m)
	assert.Contains(t, body, "garantias_claims_created_total 3")
	assert.Contains(t, body, "garantias_emails_sent_total 1")
	assert.Contains(t, body, "garantias_emails_failed_total 1")
}

func TestLoginYPeticiones(t *testing.T) {
	m := metrics.New()

	m.Login(metrics.LoginOK)
	m.Login(metrics.LoginInvalid)
	m.Login(metrics.LoginInvalid)
	m.ObserveRequest("GET", "/api/garantias", 200, 0.01)

	body := scrape(t, m)
	assert.Contains(t, body, `garantias_logins_total{result="invalido"} 2`)
	assert.Contains(t, body, `garantias_logins_total{result="ok"} 1`)
	assert.Contains(t, body, `garantias_http_requests_total{method="GET",route="/api/garantias",status="200"} 1`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(b)
}
