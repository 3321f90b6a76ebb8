// Package warranty casos de uso del ciclo de vida de una garantía: ingreso,
// consulta, mutaciones con control de propiedad y comentarios.
package warranty

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/application/validation"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	domwarranty "github.com/jhoicas/Garantias-api/internal/domain/warranty"
	"github.com/jhoicas/Garantias-api/pkg/logger"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// UseCase orquesta repositorios, almacén de archivos y notificador.
type UseCase struct {
	warranties repository.WarrantyRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	files      ports.FileStore
	company    CompanyProvider
	notifier   Notifier
	vocabulary *domwarranty.Vocabulary
	clock      clock.Clock
	log        *logger.Logger
}

// Deps dependencias del caso de uso. Notifier y Log pueden ser nil.
type Deps struct {
	Warranties repository.WarrantyRepository
	Comments   repository.CommentRepository
	Users      repository.UserRepository
	Files      ports.FileStore
	Company    CompanyProvider
	Notifier   Notifier
	Vocabulary *domwarranty.Vocabulary // nil = estados por defecto
	Clock      clock.Clock
	Log        *logger.Logger
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(d Deps) *UseCase {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Vocabulary == nil {
		d.Vocabulary = domwarranty.NewVocabulary(nil)
	}
	return &UseCase{
		warranties: d.Warranties,
		comments:   d.Comments,
		users:      d.Users,
		files:      d.Files,
		company:    d.Company,
		notifier:   d.Notifier,
		vocabulary: d.Vocabulary,
		clock:      d.Clock,
		log:        d.Log.Component("warranty"),
	}
}

// Create registra una garantía en estado Recibido. Sin usuario_asignado queda asignada
// al creador; un valor explícito no se valida contra los usuarios existentes.
// Si el cliente tiene email se intenta el aviso; su fallo solo deja EmailSent=false.
func (uc *UseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateWarrantyRequest, image *ports.Upload) (*dto.CreateWarrantyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionCreateWarranty, ""); err != nil {
		return nil, err
	}
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.FaultDescription = strings.TrimSpace(in.FaultDescription)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	productType := strings.TrimSpace(in.ResolvedProductType())
	if productType == "" {
		return nil, validation.Required("tipo_producto")
	}

	assigned := strings.TrimSpace(in.AssignedUser)
	if assigned == "" {
		assigned = actor.Username
	}
	w := &entity.Warranty{
		ClientName:       in.ClientName,
		IDDocument:       strings.TrimSpace(in.IDDocument),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            in.Email,
		ProductType:      productType,
		Brand:            strings.TrimSpace(in.Brand),
		Model:            strings.TrimSpace(in.Model),
		Serial:           strings.TrimSpace(in.Serial),
		InvoiceRef:       strings.TrimSpace(in.InvoiceRef),
		PurchaseDate:     strings.TrimSpace(in.PurchaseDate),
		FaultDescription: in.FaultDescription,
		Status:           entity.StatusRecibido,
		AssignedUser:     assigned,
		CreatedAt:        timeutil.Now(uc.clock),
	}

	if image != nil && image.Content != nil {
		p, err := uc.files.Save(ctx, *image)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		w.ImagePath = p
	}
	if err := uc.warranties.Create(ctx, w); err != nil {
		uc.discard(ctx, w.ImagePath)
		return nil, err
	}

	out := &dto.CreateWarrantyResponse{WarrantyResponse: *toWarrantyResponse(w)}
	if w.Email != "" {
		out.EmailSent = uc.notify(ctx, w, actor.Username)
	}
	return out, nil
}

// List lista garantías por id descendente con filtros opcionales.
func (uc *UseCase) List(ctx context.Context, actor policy.Actor, filter repository.WarrantyFilter) ([]dto.WarrantyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionViewWarranty, ""); err != nil {
		return nil, err
	}
	filter.Status = strings.TrimSpace(filter.Status)
	filter.AssignedUser = strings.TrimSpace(filter.AssignedUser)
	filter.Search = strings.TrimSpace(filter.Search)
	items, err := uc.warranties.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarrantyResponse, 0, len(items))
	for _, w := range items {
		out = append(out, *toWarrantyResponse(w))
	}
	return out, nil
}

// Get detalle de una garantía.
func (uc *UseCase) Get(ctx context.Context, actor policy.Actor, id int64) (*dto.WarrantyResponse, error) {
	if err := policy.Authorize(actor, policy.ActionViewWarranty, ""); err != nil {
		return nil, err
	}
	w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

// ChangeStatus fija el estado (texto libre, no vacío). No hay grafo de transiciones.
func (uc *UseCase) ChangeStatus(ctx context.Context, actor policy.Actor, id int64, in dto.ChangeStatusRequest) (*dto.WarrantyResponse, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return nil, validation.Required("estado")
	}
	return uc.mutate(ctx, actor, id, policy.ActionChangeStatus, func(w *entity.Warranty) error {
		if !uc.vocabulary.IsSuggested(status) {
			uc.log.Debug().Int64("garantia_id", w.ID).Str("estado", status).Msg("estado fuera del vocabulario sugerido")
		}
		w.Status = entity.Status(status)
		return nil
	})
}

// UpdateAmount fija el valor cobrado. Vacío o nulo lo borra; negativo es inválido.
func (uc *UseCase) UpdateAmount(ctx context.Context, actor policy.Actor, id int64, in dto.UpdateAmountRequest) (*dto.WarrantyResponse, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, id, policy.ActionUpdateAmount, func(w *entity.Warranty) error {
		w.ChargedAmount = amount
		return nil
	})
}

// UpdateCustomer modifica los datos de contacto enviados.
func (uc *UseCase) UpdateCustomer(ctx context.Context, actor policy.Actor, id int64, in dto.UpdateCustomerRequest) (*dto.WarrantyResponse, error) {
	if in.ClientName != nil && strings.TrimSpace(*in.ClientName) == "" {
		return nil, validation.Required("cliente")
	}
	if in.Email != nil {
		e := strings.TrimSpace(*in.Email)
		in.Email = &e
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, id, policy.ActionEditCustomer, func(w *entity.Warranty) error {
		set(&w.ClientName, in.ClientName)
		set(&w.IDDocument, in.IDDocument)
		set(&w.Phone, in.Phone)
		set(&w.Email, in.Email)
		return nil
	})
}

// Reassign cambia el usuario asignado. A diferencia del ingreso, el destino debe existir.
func (uc *UseCase) Reassign(ctx context.Context, actor policy.Actor, id int64, in dto.ReassignRequest) (*dto.WarrantyResponse, error) {
	target := strings.TrimSpace(in.Username)
	if target == "" {
		return nil, validation.Required("usuario_asignado")
	}
	return uc.mutate(ctx, actor, id, policy.ActionReassign, func(w *entity.Warranty) error {
		u, err := uc.users.GetByUsername(ctx, target)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, target)
		}
		w.AssignedUser = u.Username
		return nil
	})
}

// AddComment agrega un comentario (con adjunto opcional). El autor es el username del actor.
func (uc *UseCase) AddComment(ctx context.Context, actor policy.Actor, id int64, text string, attachment *ports.Upload) (*dto.AddCommentResponse, error) {
	if err := policy.Authorize(actor, policy.ActionAddComment, ""); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validation.Required("texto")
	}
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	c := &entity.Comment{
		WarrantyID:     id,
		AuthorUsername: actor.Username,
		Text:           text,
		CreatedAt:      timeutil.Now(uc.clock),
	}
	if attachment != nil && attachment.Content != nil {
		p, err := uc.files.Save(ctx, *attachment)
		if err != nil {
			return nil, fmt.Errorf("guardar adjunto: %w", err)
		}
		c.AttachmentPath = p
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		uc.discard(ctx, c.AttachmentPath)
		return nil, err
	}
	return &dto.AddCommentResponse{Message: "Comentario agregado", Comment: toCommentResponse(c)}, nil
}

// ListComments comentarios de la garantía por id ascendente.
func (uc *UseCase) ListComments(ctx context.Context, actor policy.Actor, id int64) ([]dto.CommentResponse, error) {
	if err := policy.Authorize(actor, policy.ActionViewWarranty, ""); err != nil {
		return nil, err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.comments.ListByWarranty(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

// mutate carga la garantía, autoriza contra su usuario asignado actual, aplica fn y persiste.
func (uc *UseCase) mutate(ctx context.Context, actor policy.Actor, id int64, action policy.Action, fn func(*entity.Warranty) error) (*dto.WarrantyResponse, error) {
	w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, action, w.AssignedUser); err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := uc.warranties.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*entity.Warranty, error) {
	w, err := uc.warranties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: garantía %d", domain.ErrNotFound, id)
	}
	return w, nil
}

func (uc *UseCase) notify(ctx context.Context, w *entity.Warranty, technician string) bool {
	if uc.notifier == nil {
		return false
	}
	company, err := uc.company.Config(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Int64("garantia_id", w.ID).Msg("no se pudo leer la configuración para el correo")
		company = entity.DefaultCompanyConfig()
	}
	err = uc.notifier.NotifyCreated(ctx, CreatedNotice{Warranty: w, Company: company, Technician: technician})
	switch {
	case err == nil:
		uc.log.Info().Int64("garantia_id", w.ID).Str("email", w.Email).Msg("correo de ingreso enviado")
		return true
	case errors.Is(err, ErrNotifierDisabled):
		uc.log.Debug().Int64("garantia_id", w.ID).Msg("correo omitido: SMTP no configurado")
	default:
		uc.log.Warn().Err(err).Int64("garantia_id", w.ID).Str("email", w.Email).Msg("fallo enviando correo de ingreso")
	}
	return false
}

// discard borra un archivo recién guardado cuando la fila no se pudo persistir.
func (uc *UseCase) discard(ctx context.Context, publicPath string) {
	if publicPath == "" {
		return
	}
	name := path.Base(publicPath)
	if err := uc.files.Remove(ctx, name); err != nil {
		uc.log.Warn().Err(err).Str("archivo", name).Msg("no se pudo borrar el archivo huérfano")
	}
}

func parseAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: valor_cobrado debe ser numérico", domain.ErrInvalidInput)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: valor_cobrado no puede ser negativo", domain.ErrInvalidInput)
	}
	return &d, nil
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func toWarrantyResponse(w *entity.Warranty) *dto.WarrantyResponse {
	return &dto.WarrantyResponse{
		ID:                 w.ID,
		ClientName:         w.ClientName,
		IDDocument:         w.IDDocument,
		Phone:              w.Phone,
		Email:              w.Email,
		ProductType:        w.ProductType,
		Brand:              w.Brand,
		Model:              w.Model,
		Serial:             w.Serial,
		InvoiceRef:         w.InvoiceRef,
		PurchaseDate:       w.PurchaseDate,
		ProductDescription: w.ProductDescription(),
		FaultDescription:   w.FaultDescription,
		ImagePath:          w.ImagePath,
		Status:             string(w.Status),
		AssignedUser:       w.AssignedUser,
		ChargedAmount:      w.ChargedAmount,
		CreatedAt:          timeutil.In(w.CreatedAt),
	}
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:             c.ID,
		Author:         c.AuthorUsername,
		Text:           c.Text,
		AttachmentPath: c.AttachmentPath,
		CreatedAt:      timeutil.In(c.CreatedAt),
	}
}
