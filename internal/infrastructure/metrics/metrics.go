// Package metrics expone contadores Prometheus del servicio en un registro propio.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "garantias"

// Resultados de login.
const (
	LoginOK      = "ok"
	LoginInvalid = "invalido"
	LoginError   = "error"
)

// Metrics agrupa los colectores registrados.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	logins         *prometheus.CounterVec
	claimsCreated  prometheus.Counter
	emailsSent     prometheus.Counter
	emailsFailed   prometheus.Counter
	resetsExecuted prometheus.Counter
}

// New crea el registro con los colectores del servicio y los del runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "logins_total",
			Help: "Intentos de login por resultado.",
		}, []string{"result"}),
		claimsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "claims_created_total",
			Help: "Garantías registradas.",
		}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "emails_sent_total",
			Help: "Correos de aviso enviados.",
		}),
		emailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "emails_failed_total",
			Help: "Garantías con email cuyo aviso no se envió.",
		}),
		resetsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "data_resets_total",
			Help: "Limpiezas de datos de prueba ejecutadas.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.logins,
		m.claimsCreated, m.emailsSent, m.emailsFailed, m.resetsExecuted,
	)
	return m
}

// ObserveRequest registra una petición terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(seconds)
}

// Login cuenta un intento de login con su resultado.
func (m *Metrics) Login(result string) { m.logins.WithLabelValues(result).Inc() }

// ClaimCreated cuenta una garantía registrada y el resultado de su aviso.
// hasEmail false no cuenta envío ni fallo.
func (m *Metrics) ClaimCreated(hasEmail, emailSent bool) {
	m.claimsCreated.Inc()
	if !hasEmail {
		return
	}
	if emailSent {
		m.emailsSent.Inc()
	} else {
		m.emailsFailed.Inc()
	}
}

// Reset cuenta una limpieza de datos.
func (m *Metrics) Reset() { m.resetsExecuted.Inc() }

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP del endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
