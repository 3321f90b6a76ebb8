package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
)

var _ repository.WarrantyRepository = (*WarrantyRepo)(nil)

const warrantyColumns = `id, cliente, cedula, telefono, email, tipo_producto, marca, modelo, serial,
	factura, fecha_compra, descripcion_falla, imagen_path, estado, usuario_asignado, valor_cobrado, fecha_registro`

// WarrantyRepo implementación del puerto WarrantyRepository sobre PostgreSQL.
type WarrantyRepo struct {
	q Querier
}

// NewWarrantyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarrantyRepository(q Querier) *WarrantyRepo {
	return &WarrantyRepo{q: q}
}

// Create persiste la garantía y asigna su ID.
func (r *WarrantyRepo) Create(ctx context.Context, w *entity.Warranty) error {
	query := `
		INSERT INTO garantias (cliente, cedula, telefono, email, tipo_producto, marca, modelo, serial,
			factura, fecha_compra, descripcion_falla, imagen_path, estado, usuario_asignado, valor_cobrado, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		w.ClientName, w.IDDocument, w.Phone, w.Email, w.ProductType, w.Brand, w.Model, w.Serial,
		w.InvoiceRef, w.PurchaseDate, w.FaultDescription, nullIfEmpty(w.ImagePath), string(w.Status),
		w.AssignedUser, w.ChargedAmount, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert garantía: %w", err)
	}
	return nil
}

// GetByID obtiene una garantía por ID o (nil, nil).
func (r *WarrantyRepo) GetByID(ctx context.Context, id int64) (*entity.Warranty, error) {
	w, err := scanWarranty(r.q.QueryRow(ctx, `SELECT `+warrantyColumns+` FROM garantias WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get garantía: %w", err)
	}
	return w, nil
}

// List lista por id descendente aplicando los filtros no vacíos.
func (r *WarrantyRepo) List(ctx context.Context, f repository.WarrantyFilter) ([]*entity.Warranty, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.AssignedUser != "" {
		args = append(args, f.AssignedUser)
		where = append(where, fmt.Sprintf("usuario_asignado = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(cliente ILIKE $%d OR cedula ILIKE $%d OR serial ILIKE $%d)", n, n, n))
	}
	query := `SELECT ` + warrantyColumns + ` FROM garantias`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list garantías: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warranty
	for rows.Next() {
		w, err := scanWarranty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan garantía: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Update reescribe los campos mutables (último en escribir gana).
func (r *WarrantyRepo) Update(ctx context.Context, w *entity.Warranty) error {
	query := `
		UPDATE garantias SET cliente = $2, cedula = $3, telefono = $4, email = $5,
			estado = $6, usuario_asignado = $7, valor_cobrado = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		w.ID, w.ClientName, w.IDDocument, w.Phone, w.Email, string(w.Status), w.AssignedUser, w.ChargedAmount,
	)
	if err != nil {
		return fmt.Errorf("update garantía: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count número de garantías.
func (r *WarrantyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM garantias`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count garantías: %w", err)
	}
	return n, nil
}

// DeleteAll borra todas las garantías; los comentarios caen por ON DELETE CASCADE.
func (r *WarrantyRepo) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM garantias`)
	if err != nil {
		return 0, fmt.Errorf("delete garantías: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanWarranty(row pgx.Row) (*entity.Warranty, error) {
	var (
		w      entity.Warranty
		image  *string
		status string
		amount *decimal.Decimal
	)
	err := row.Scan(
		&w.ID, &w.ClientName, &w.IDDocument, &w.Phone, &w.Email, &w.ProductType, &w.Brand, &w.Model, &w.Serial,
		&w.InvoiceRef, &w.PurchaseDate, &w.FaultDescription, &image, &status, &w.AssignedUser, &amount, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.ImagePath = derefString(image)
	w.Status = entity.Status(status)
	w.ChargedAmount = amount
	return &w, nil
}

// escapeLike escapa comodines de LIKE en texto del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
