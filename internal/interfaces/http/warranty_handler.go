package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
)

// WarrantyHandler maneja garantías y sus comentarios.
type WarrantyHandler struct {
	uc      *warranty.UseCase
	metrics *metrics.Metrics
}

// NewWarrantyHandler construye el handler inyectando el caso de uso.
func NewWarrantyHandler(uc *warranty.UseCase, m *metrics.Metrics) *WarrantyHandler {
	return &WarrantyHandler{uc: uc, metrics: m}
}

// Create godoc
// @Summary      Registrar garantía
// @Tags         garantias
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        cliente            formData  string  true   "Nombre del cliente"
// @Param        tipo_producto      formData  string  true   "Tipo de producto (alias: producto)"
// @Param        descripcion_falla  formData  string  true   "Falla reportada"
// @Param        cedula             formData  string  false  "Cédula / NIT"
// @Param        telefono           formData  string  false  "Teléfono"
// @Param        email              formData  string  false  "Email del cliente"
// @Param        marca              formData  string  false  "Marca"
// @Param        modelo             formData  string  false  "Modelo"
// @Param        serial             formData  string  false  "Serial"
// @Param        factura            formData  string  false  "Factura"
// @Param        fecha_compra       formData  string  false  "Fecha de compra"
// @Param        usuario_asignado   formData  string  false  "Técnico asignado (por defecto el creador)"
// @Param        imagen             formData  file    false  "Evidencia"
// @Success      201  {object}  dto.CreateWarrantyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/garantias [post]
func (h *WarrantyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarrantyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	image, closeFn, err := formUpload(c, "imagen")
	if err != nil {
		return writeError(c, err)
	}
	defer closeFn()

	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in, image)
	if err != nil {
		return writeError(c, err)
	}
	h.metrics.ClaimCreated(out.Email != "", out.EmailSent)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar garantías (id descendente)
// @Tags         garantias
// @Produce      json
// @Security     BearerAuth
// @Param        estado            query  string  false  "Filtrar por estado"
// @Param        usuario_asignado  query  string  false  "Filtrar por técnico"
// @Param        q                 query  string  false  "Buscar en cliente, cédula o serial"
// @Success      200  {array}   dto.WarrantyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/garantias [get]
func (h *WarrantyHandler) List(c *fiber.Ctx) error {
	filter := repository.WarrantyFilter{
		Status:       strings.TrimSpace(c.Query("estado")),
		AssignedUser: strings.TrimSpace(c.Query("usuario_asignado")),
		Search:       strings.TrimSpace(c.Query("q")),
	}
	out, err := h.uc.List(c.UserContext(), actorFrom(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de garantía
// @Tags         garantias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la garantía"
// @Success      200  {object}  dto.WarrantyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/garantias/{id} [get]
func (h *WarrantyHandler) Get(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Tags         garantias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                      true  "ID de la garantía"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado (texto libre)"
// @Success      200   {object}  dto.WarrantyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/estado [patch]
func (h *WarrantyHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateAmount godoc
// @Summary      Actualizar valor cobrado
// @Tags         garantias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                      true  "ID de la garantía"
// @Param        body  body  dto.UpdateAmountRequest  true  "Valor (vacío o null lo borra)"
// @Success      200   {object}  dto.WarrantyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/valor [patch]
func (h *WarrantyHandler) UpdateAmount(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateAmount(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCustomer godoc
// @Summary      Editar datos del cliente
// @Tags         garantias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                        true  "ID de la garantía"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.WarrantyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/cliente [patch]
func (h *WarrantyHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateCustomer(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reassign godoc
// @Summary      Reasignar técnico
// @Tags         garantias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                  true  "ID de la garantía"
// @Param        body  body  dto.ReassignRequest  true  "Usuario destino (debe existir)"
// @Success      200   {object}  dto.WarrantyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/asignar [patch]
func (h *WarrantyHandler) Reassign(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.ReassignRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Reassign(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddComment godoc
// @Summary      Agregar comentario
// @Tags         comentarios
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true   "ID de la garantía"
// @Param        texto    formData  string  true   "Comentario"
// @Param        archivo  formData  file    false  "Adjunto"
// @Success      201  {object}  dto.AddCommentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/comentarios [post]
func (h *WarrantyHandler) AddComment(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in struct {
		Text string `json:"texto" form:"texto"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	attachment, closeFn, err := formUpload(c, "archivo")
	if err != nil {
		return writeError(c, err)
	}
	defer closeFn()

	out, err := h.uc.AddComment(c.UserContext(), actorFrom(c), id, in.Text, attachment)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListComments godoc
// @Summary      Comentarios de una garantía (id ascendente)
// @Tags         comentarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la garantía"
// @Success      200  {array}   dto.CommentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/garantias/{id}/comentarios [get]
func (h *WarrantyHandler) ListComments(c *fiber.Ctx) error {
	id, ok := warrantyID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.ListComments(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func warrantyID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
