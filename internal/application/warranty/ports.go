package warranty

import (
	"context"
	"errors"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// ErrNotifierDisabled lo devuelve un Notifier sin servidor configurado.
var ErrNotifierDisabled = errors.New("notificaciones por correo deshabilitadas")

// CreatedNotice datos del aviso de garantía registrada.
type CreatedNotice struct {
	Warranty   *entity.Warranty
	Company    *entity.CompanyConfig
	Technician string // usuario que registró la garantía
}

// Notifier envía el aviso de garantía registrada al cliente. Best effort: un error
// nunca revierte la creación.
type Notifier interface {
	NotifyCreated(ctx context.Context, notice CreatedNotice) error
}

// CompanyProvider devuelve la configuración vigente de la empresa (o los valores por defecto).
type CompanyProvider interface {
	Config(ctx context.Context) (*entity.CompanyConfig, error)
}
