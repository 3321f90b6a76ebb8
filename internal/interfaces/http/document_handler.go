package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
)

// DocumentHandler sirve recibos y la exportación.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler inyectando el caso de uso.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// ReceiptHTML godoc
// @Summary      Recibo de garantía (HTML imprimible)
// @Tags         documentos
// @Produce      html
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la garantía"
// @Success      200  {string}  string  "HTML"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/recibo [get]
func (h *DocumentHandler) ReceiptHTML(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	f, err := h.uc.RenderReceiptHTML(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, false)
}

// ReceiptPDF godoc
// @Summary      Recibo de garantía (PDF)
// @Tags         documentos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la garantía"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/recibo/pdf [get]
func (h *DocumentHandler) ReceiptPDF(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	f, err := h.uc.RenderReceiptPDF(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, true)
}

// Export godoc
// @Summary      Exportar garantías a Excel
// @Tags         documentos
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/garantias/export [get]
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	f, err := h.uc.ExportAll(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, true)
}

func sendFile(c *fiber.Ctx, f *documents.File, attachment bool) error {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, f.Name))
	return c.Send(f.Content)
}
