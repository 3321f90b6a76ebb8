package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/usecase"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
)

// CompanyHandler maneja la configuración de la empresa y el vocabulario de estados.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener configuración de la empresa
// @Tags         configuracion
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/configuracion [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración de la empresa
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/configuracion [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo de la empresa
// @Tags         configuracion
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        logo  formData  file  true  "Imagen del logo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/configuracion/logo [post]
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	// La autorización va antes de abrir el archivo.
	if err := policy.Authorize(actorFrom(c), policy.ActionUploadLogo, ""); err != nil {
		return writeError(c, err)
	}
	up, closeFn, err := formUpload(c, "logo")
	if err != nil {
		return writeError(c, err)
	}
	if up == nil {
		return badRequest(c, "VALIDATION", "logo es requerido")
	}
	defer closeFn()
	out, err := h.uc.UploadLogo(c.UserContext(), actorFrom(c), *up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statuses godoc
// @Summary      Vocabulario sugerido de estados
// @Tags         configuracion
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatusesResponse
// @Router       /api/estados [get]
func (h *CompanyHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(h.uc.Statuses())
}
