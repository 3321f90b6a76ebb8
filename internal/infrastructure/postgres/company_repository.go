package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
)

// Asegura que CompanyConfigRepo implementa repository.CompanyConfigRepository.
var _ repository.CompanyConfigRepository = (*CompanyConfigRepo)(nil)

// CompanyConfigRepo configuración de empresa sobre PostgreSQL. Se usa la fila de menor id.
type CompanyConfigRepo struct {
	q Querier
}

// NewCompanyConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyConfigRepository(q Querier) *CompanyConfigRepo {
	return &CompanyConfigRepo{q: q}
}

// Get devuelve la primera fila o (nil, nil).
func (r *CompanyConfigRepo) Get(ctx context.Context) (*entity.CompanyConfig, error) {
	query := `
		SELECT id, nombre_empresa, telefono, email, direccion, ciudad, nit, logo_path, fecha_actualizacion
		FROM configuracion_empresa ORDER BY id LIMIT 1`
	var c entity.CompanyConfig
	var logo *string
	err := r.q.QueryRow(ctx, query).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.City, &c.NIT, &logo, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuración: %w", err)
	}
	c.LogoPath = derefString(logo)
	return &c, nil
}

// Save inserta si cfg.ID es 0; si no, actualiza la fila.
func (r *CompanyConfigRepo) Save(ctx context.Context, cfg *entity.CompanyConfig) error {
	if cfg.ID == 0 {
		query := `
			INSERT INTO configuracion_empresa (nombre_empresa, telefono, email, direccion, ciudad, nit, logo_path, fecha_actualizacion)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
		err := r.q.QueryRow(ctx, query,
			cfg.Name, cfg.Phone, cfg.Email, cfg.Address, cfg.City, cfg.NIT, nullIfEmpty(cfg.LogoPath), cfg.UpdatedAt,
		).Scan(&cfg.ID)
		if err != nil {
			return fmt.Errorf("insert configuración: %w", err)
		}
		return nil
	}
	query := `
		UPDATE configuracion_empresa
		SET nombre_empresa = $2, telefono = $3, email = $4, direccion = $5, ciudad = $6, nit = $7,
		    logo_path = $8, fecha_actualizacion = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		cfg.ID, cfg.Name, cfg.Phone, cfg.Email, cfg.Address, cfg.City, cfg.NIT, nullIfEmpty(cfg.LogoPath), cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update configuración: %w", err)
	}
	return nil
}
