package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status estado de una garantía. Es texto libre: lo escribe quien tenga permiso
// de cambio de estado; el vocabulario recomendado vive en domain/warranty.
type Status string

// StatusRecibido estado inicial de toda garantía.
const StatusRecibido Status = "Recibido"

// Warranty ingreso de un producto de un cliente para revisión/servicio.
type Warranty struct {
	ID int64

	// Cliente
	ClientName string
	IDDocument string // cédula / NIT
	Phone      string
	Email      string

	// Producto
	ProductType  string
	Brand        string
	Model        string
	Serial       string
	InvoiceRef   string
	PurchaseDate string // texto libre, no se valida como fecha

	FaultDescription string
	ImagePath        string // ruta pública opcional de la evidencia

	Status        Status
	AssignedUser  string           // username (no es FK; puede referir a un usuario borrado o renombrado)
	ChargedAmount *decimal.Decimal // nil = sin valor cobrado
	CreatedAt     time.Time
}

// ProductDescription une tipo, marca y modelo no vacíos con espacios.
func (w *Warranty) ProductDescription() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{w.ProductType, w.Brand, w.Model} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Comment comentario de una garantía. Solo se agrega; no se edita ni se borra.
type Comment struct {
	ID             int64
	WarrantyID     int64
	AuthorUsername string // identidad al momento de publicar, no una referencia viva
	Text           string
	AttachmentPath string
	CreatedAt      time.Time
}
