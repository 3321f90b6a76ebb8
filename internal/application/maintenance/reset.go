// Package maintenance operaciones administrativas fuera de banda.
package maintenance

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/pkg/logger"
)

// ResetTxRunner ejecuta fn dentro de una transacción con los repositorios de garantías y comentarios.
type ResetTxRunner interface {
	RunReset(ctx context.Context, fn func(warranties repository.WarrantyRepository, comments repository.CommentRepository) error) error
}

// ResetUseCase borra los datos de prueba: todas las garantías (y sus comentarios) y
// los archivos subidos, excepto el logo vigente. Usuarios y configuración se conservan.
type ResetUseCase struct {
	tx      ResetTxRunner
	company repository.CompanyConfigRepository
	files   ports.FileStore
	log     *logger.Logger
}

// NewResetUseCase construye el caso de uso. log puede ser nil.
func NewResetUseCase(tx ResetTxRunner, company repository.CompanyConfigRepository, files ports.FileStore, log *logger.Logger) *ResetUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ResetUseCase{tx: tx, company: company, files: files, log: log.Component("maintenance")}
}

// ResetAs ejecuta la limpieza en nombre de actor (solo admin).
func (uc *ResetUseCase) ResetAs(ctx context.Context, actor policy.Actor) (*dto.ResetResponse, error) {
	if err := policy.Authorize(actor, policy.ActionResetData, ""); err != nil {
		return nil, err
	}
	return uc.ResetTestData(ctx)
}

// ResetTestData ejecuta la limpieza. Las filas se borran en una transacción; los
// archivos se borran solo después del commit.
func (uc *ResetUseCase) ResetTestData(ctx context.Context) (*dto.ResetResponse, error) {
	out := &dto.ResetResponse{}

	cfg, err := uc.company.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración: %w", err)
	}
	var logoName string
	if cfg != nil && strings.TrimSpace(cfg.LogoPath) != "" {
		out.LogoPreserved = cfg.LogoPath
		logoName = path.Base(cfg.LogoPath)
	}

	err = uc.tx.RunReset(ctx, func(warranties repository.WarrantyRepository, comments repository.CommentRepository) error {
		nComments, err := comments.Count(ctx)
		if err != nil {
			return err
		}
		deleted, err := warranties.DeleteAll(ctx)
		if err != nil {
			return err
		}
		out.Comments = nComments
		out.Warranties = deleted
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("borrar garantías: %w", err)
	}

	names, err := uc.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar uploads: %w", err)
	}
	for _, name := range names {
		if logoName != "" && name == logoName {
			continue
		}
		if err := uc.files.Remove(ctx, name); err != nil {
			uc.log.Warn().Err(err).Str("archivo", name).Msg("no se pudo borrar")
			continue
		}
		out.Files++
	}

	uc.log.Info().
		Int("garantias", out.Warranties).
		Int("comentarios", out.Comments).
		Int("archivos", out.Files).
		Str("logo", out.LogoPreserved).
		Msg("datos de prueba eliminados")
	return out, nil
}
