package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/juju/clock"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/application/validation"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/internal/domain/warranty"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// LogoBaseName nombre fijo del logo en el directorio de uploads.
const LogoBaseName = "logo_empresa"

var logoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true}

// CompanyUseCase aplica reglas de negocio para la configuración de empresa (fila única).
type CompanyUseCase struct {
	repo       repository.CompanyConfigRepository
	files      ports.FileStore
	vocabulary *warranty.Vocabulary
	clock      clock.Clock
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyConfigRepository, files ports.FileStore, vocabulary *warranty.Vocabulary, clk clock.Clock) *CompanyUseCase {
	if vocabulary == nil {
		vocabulary = warranty.NewVocabulary(nil)
	}
	return &CompanyUseCase{repo: repo, files: files, vocabulary: vocabulary, clock: clk}
}

// Config devuelve la configuración guardada o los valores por defecto. Sin autorización:
// la usan recibos y correos.
func (uc *CompanyUseCase) Config(ctx context.Context) (*entity.CompanyConfig, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return entity.DefaultCompanyConfig(), nil
	}
	return cfg, nil
}

// Get devuelve la configuración (solo admin).
func (uc *CompanyUseCase) Get(ctx context.Context, actor policy.Actor) (*dto.CompanyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionViewCompany, ""); err != nil {
		return nil, err
	}
	cfg, err := uc.Config(ctx)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(cfg), nil
}

// Update modifica los campos enviados; los ausentes se conservan.
func (uc *CompanyUseCase) Update(ctx context.Context, actor policy.Actor, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUpdateCompany, ""); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cfg, err := uc.Config(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validation.Required("nombre_empresa")
		}
		cfg.Name = name
	}
	assign(&cfg.Phone, in.Phone)
	assign(&cfg.Email, in.Email)
	assign(&cfg.Address, in.Address)
	assign(&cfg.City, in.City)
	assign(&cfg.NIT, in.NIT)
	cfg.UpdatedAt = timeutil.Now(uc.clock)

	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(cfg), nil
}

// UploadLogo guarda el logo con nombre fijo (reemplaza el anterior) y actualiza logo_path.
func (uc *CompanyUseCase) UploadLogo(ctx context.Context, actor policy.Actor, up ports.Upload) (*dto.CompanyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUploadLogo, ""); err != nil {
		return nil, err
	}
	if up.Content == nil {
		return nil, validation.Required("logo")
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !logoExtensions[ext] {
		return nil, fmt.Errorf("%w: el logo debe ser una imagen (png, jpg, gif, webp o svg)", domain.ErrInvalidInput)
	}
	publicPath, err := uc.files.SaveAs(ctx, LogoBaseName, up)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.Config(ctx)
	if err != nil {
		return nil, err
	}
	cfg.LogoPath = publicPath
	cfg.UpdatedAt = timeutil.Now(uc.clock)
	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(cfg), nil
}

// EnsureDefault crea la fila de configuración con name si no existe ninguna.
func (uc *CompanyUseCase) EnsureDefault(ctx context.Context, name string) (bool, error) {
	existing, err := uc.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	cfg := entity.DefaultCompanyConfig()
	if strings.TrimSpace(name) != "" {
		cfg.Name = strings.TrimSpace(name)
	}
	cfg.UpdatedAt = timeutil.Now(uc.clock)
	if err := uc.repo.Save(ctx, cfg); err != nil {
		return false, err
	}
	return true, nil
}

// Statuses vocabulario sugerido de estados.
func (uc *CompanyUseCase) Statuses() dto.StatusesResponse {
	return dto.StatusesResponse{Statuses: uc.vocabulary.Labels(), Initial: string(entity.StatusRecibido)}
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func entityToCompanyResponse(c *entity.CompanyConfig) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	out := &dto.CompanyResponse{
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		City:     c.City,
		NIT:      c.NIT,
		LogoPath: c.LogoPath,
	}
	if !c.UpdatedAt.IsZero() {
		t := timeutil.In(c.UpdatedAt)
		out.UpdatedAt = &t
	}
	return out
}
