package repository

import (
	"context"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// CompanyConfigRepository define el puerto de persistencia para la configuración de empresa.
// La implementación vive en infrastructure.
type CompanyConfigRepository interface {
	// Get devuelve la primera fila o (nil, nil) si no existe ninguna.
	Get(ctx context.Context) (*entity.CompanyConfig, error)
	// Save inserta la fila si ID es 0 o la actualiza en caso contrario.
	Save(ctx context.Context, cfg *entity.CompanyConfig) error
}
