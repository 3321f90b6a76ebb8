package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarrantyRequest formulario de ingreso (multipart). "producto" se acepta
// como alias histórico de "tipo_producto".
type CreateWarrantyRequest struct {
	ClientName       string `form:"cliente" validate:"required"`
	IDDocument       string `form:"cedula"`
	Phone            string `form:"telefono"`
	Email            string `form:"email" validate:"omitempty,email"`
	ProductType      string `form:"tipo_producto"`
	Product          string `form:"producto"`
	Brand            string `form:"marca"`
	Model            string `form:"modelo"`
	Serial           string `form:"serial"`
	InvoiceRef       string `form:"factura"`
	PurchaseDate     string `form:"fecha_compra"`
	FaultDescription string `form:"descripcion_falla" validate:"required"`
	AssignedUser     string `form:"usuario_asignado"`
}

// ResolvedProductType tipo de producto con el alias "producto" aplicado.
func (r CreateWarrantyRequest) ResolvedProductType() string {
	if r.ProductType != "" {
		return r.ProductType
	}
	return r.Product
}

// ChangeStatusRequest PATCH /estado.
type ChangeStatusRequest struct {
	Status string `json:"estado" form:"estado" validate:"required"`
}

// UpdateAmountRequest PATCH /valor. Cadena vacía o nula borra el valor.
// En JSON el valor llega como número o como cadena.
type UpdateAmountRequest struct {
	Amount *string `json:"valor_cobrado" form:"valor_cobrado"`
}

// UnmarshalJSON acepta {"valor_cobrado": 150000} y {"valor_cobrado": "150000"}.
func (r *UpdateAmountRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Amount json.RawMessage `json:"valor_cobrado"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Amount = nil
	if len(raw.Amount) == 0 || string(raw.Amount) == "null" {
		return nil
	}
	if raw.Amount[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.Amount, &s); err != nil {
			return err
		}
		r.Amount = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.Amount, &n); err != nil {
		return fmt.Errorf("valor_cobrado: %w", err)
	}
	s := n.String()
	r.Amount = &s
	return nil
}

// UpdateCustomerRequest PATCH /cliente (campos opcionales).
type UpdateCustomerRequest struct {
	ClientName *string `json:"cliente" form:"cliente" validate:"omitempty,min=1"`
	IDDocument *string `json:"cedula" form:"cedula"`
	Phone      *string `json:"telefono" form:"telefono"`
	Email      *string `json:"email" form:"email" validate:"omitempty,email"`
}

// ReassignRequest PATCH /asignar.
type ReassignRequest struct {
	Username string `json:"usuario_asignado" form:"usuario_asignado" validate:"required"`
}

// WarrantyResponse salida de una garantía.
type WarrantyResponse struct {
	ID                 int64            `json:"id"`
	ClientName         string           `json:"cliente"`
	IDDocument         string           `json:"cedula"`
	Phone              string           `json:"telefono"`
	Email              string           `json:"email"`
	ProductType        string           `json:"tipo_producto"`
	Brand              string           `json:"marca"`
	Model              string           `json:"modelo"`
	Serial             string           `json:"serial"`
	InvoiceRef         string           `json:"factura"`
	PurchaseDate       string           `json:"fecha_compra"`
	ProductDescription string           `json:"producto"`
	FaultDescription   string           `json:"descripcion_falla"`
	ImagePath          string           `json:"imagen_path,omitempty"`
	Status             string           `json:"estado"`
	AssignedUser       string           `json:"usuario_asignado"`
	ChargedAmount      *decimal.Decimal `json:"valor_cobrado"`
	CreatedAt          time.Time        `json:"fecha_registro"`
}

// CreateWarrantyResponse garantía creada más el resultado del correo.
type CreateWarrantyResponse struct {
	WarrantyResponse
	EmailSent bool `json:"correo_enviado"`
}

// CommentResponse salida de un comentario.
type CommentResponse struct {
	ID             int64     `json:"id"`
	Author         string    `json:"usuario"`
	Text           string    `json:"texto"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
	CreatedAt      time.Time `json:"fecha"`
}

// AddCommentResponse confirmación de comentario agregado.
type AddCommentResponse struct {
	Message string          `json:"mensaje"`
	Comment CommentResponse `json:"comentario"`
}

// ResetResponse resultado de la limpieza de datos de prueba.
type ResetResponse struct {
	Warranties    int    `json:"garantias_borradas"`
	Comments      int    `json:"comentarios_borrados"`
	Files         int    `json:"archivos_borrados"`
	LogoPreserved string `json:"logo_conservado,omitempty"`
}
