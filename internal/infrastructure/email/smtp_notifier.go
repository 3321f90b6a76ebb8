// Package email envía el aviso de garantía registrada por SMTP (gomail).
package email

import (
	"context"
	_ "embed"
	"fmt"
	"html"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/pkg/config"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

//go:embed templates/orden_garantia.html
var orderTemplate string

// Sender envía mensajes ya armados. *gomail.Dialer lo implementa.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ warranty.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier implementa warranty.Notifier. Con sender nil está deshabilitado.
type SMTPNotifier struct {
	from   string
	sender Sender
}

// NewSMTPNotifier construye el notificador desde la configuración SMTP.
// Host vacío deja el notificador deshabilitado.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	if !cfg.Enabled() {
		return &SMTPNotifier{}
	}
	return &SMTPNotifier{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NewNotifierWithSender permite inyectar el transporte (tests).
func NewNotifierWithSender(from string, s Sender) *SMTPNotifier {
	return &SMTPNotifier{from: from, sender: s}
}

// NotifyCreated arma y envía el correo al email del cliente.
func (n *SMTPNotifier) NotifyCreated(ctx context.Context, notice warranty.CreatedNotice) error {
	if n.sender == nil {
		return warranty.ErrNotifierDisabled
	}
	w := notice.Warranty
	if w == nil || strings.TrimSpace(w.Email) == "" {
		return fmt.Errorf("email: garantía sin destinatario")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body := Render(notice)
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", w.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("email: enviar orden %d: %w", w.ID, err)
	}
	return nil
}

// Render devuelve asunto y cuerpo HTML del aviso. Los valores se escapan.
func Render(notice warranty.CreatedNotice) (subject, body string) {
	w := notice.Warranty
	company := notice.Company
	if company == nil {
		company = entity.DefaultCompanyConfig()
	}
	id := strconv.FormatInt(w.ID, 10)
	technician := notice.Technician
	if technician == "" {
		technician = w.AssignedUser
	}

	r := strings.NewReplacer(
		"[cliente]", html.EscapeString(w.ClientName),
		"[numero_recibo]", documents.ReceiptNumber(w.ID),
		"[fecha]", timeutil.In(w.CreatedAt).Format(timeutil.DateTimeLayout),
		"[usuario]", html.EscapeString(technician),
		"[marca]", html.EscapeString(w.Brand),
		"[modelo]", html.EscapeString(w.Model),
		"[serial]", html.EscapeString(w.Serial),
		"[fallo]", html.EscapeString(w.FaultDescription),
		"[empresa]", html.EscapeString(company.Name),
		"[telefono_empresa]", html.EscapeString(company.Phone),
		"[email_empresa]", html.EscapeString(company.Email),
	)
	return fmt.Sprintf("Orden de Servicio #%s - %s", id, w.ClientName), r.Replace(orderTemplate)
}
