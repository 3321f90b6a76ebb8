package repository

import (
	"context"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// WarrantyFilter filtros opcionales del listado. Campos vacíos no filtran.
type WarrantyFilter struct {
	Status       string
	AssignedUser string
	Search       string // cliente, cédula o serial (contiene, sin distinguir mayúsculas)
}

// WarrantyRepository define el puerto de persistencia para garantías.
type WarrantyRepository interface {
	// Create persiste la garantía y asigna w.ID.
	Create(ctx context.Context, w *entity.Warranty) error
	GetByID(ctx context.Context, id int64) (*entity.Warranty, error)
	// List ordena por id descendente.
	List(ctx context.Context, filter WarrantyFilter) ([]*entity.Warranty, error)
	Update(ctx context.Context, w *entity.Warranty) error
	Count(ctx context.Context) (int, error)
	// DeleteAll borra todas las garantías (los comentarios caen en cascada) y devuelve cuántas borró.
	DeleteAll(ctx context.Context) (int, error)
}

// CommentRepository define el puerto de persistencia para comentarios (solo inserción y lectura).
type CommentRepository interface {
	// Create persiste el comentario y asigna c.ID.
	Create(ctx context.Context, c *entity.Comment) error
	// ListByWarranty ordena por id ascendente.
	ListByWarranty(ctx context.Context, warrantyID int64) ([]*entity.Comment, error)
	Count(ctx context.Context) (int, error)
}
