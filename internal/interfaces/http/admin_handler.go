package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/maintenance"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
)

// AdminHandler operaciones de mantenimiento.
type AdminHandler struct {
	reset   *maintenance.ResetUseCase
	metrics *metrics.Metrics
}

// NewAdminHandler construye el handler.
func NewAdminHandler(reset *maintenance.ResetUseCase, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{reset: reset, metrics: m}
}

// ResetData godoc
// @Summary      Limpiar datos de prueba (garantías, comentarios y archivos salvo el logo)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ResetResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/limpiar-datos [post]
func (h *AdminHandler) ResetData(c *fiber.Ctx) error {
	out, err := h.reset.ResetAs(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	h.metrics.Reset()
	return c.JSON(out)
}
