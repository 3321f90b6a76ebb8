package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Garantias-api/pkg/logger"
)

// RequestLogger registra una línea por petición y alimenta las métricas HTTP.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := "otra"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = strings.TrimSuffix(r.Path, "/")
		}
		m.ObserveRequest(c.Method(), route, status, elapsed.Seconds())

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Str("usuario", GetUsername(c)).
			Msg("petición")
		return nil
	}
}
