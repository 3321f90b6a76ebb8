package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo comentarios sobre PostgreSQL. Solo inserción y lectura.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste el comentario y asigna su ID.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comentarios (garantia_id, usuario, texto, attachment_path, fecha)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.WarrantyID, c.AuthorUsername, c.Text, nullIfEmpty(c.AttachmentPath), c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert comentario: %w", err)
	}
	return nil
}

// ListByWarranty comentarios de una garantía por id ascendente.
func (r *CommentRepo) ListByWarranty(ctx context.Context, warrantyID int64) ([]*entity.Comment, error) {
	query := `
		SELECT id, garantia_id, usuario, texto, attachment_path, fecha
		FROM comentarios WHERE garantia_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, warrantyID)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		var attachment *string
		if err := rows.Scan(&c.ID, &c.WarrantyID, &c.AuthorUsername, &c.Text, &attachment, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		c.AttachmentPath = derefString(attachment)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count número total de comentarios.
func (r *CommentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM comentarios`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comentarios: %w", err)
	}
	return n, nil
}
