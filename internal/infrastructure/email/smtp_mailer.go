package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/pkg/config"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos con gomail. Sin host configurado devuelve ErrProviderUnavailable.
type SMTPMailer struct {
	from    string
	enabled bool
	send    func(*gomail.Message) error
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTPMailer{
		from:    cfg.From,
		enabled: cfg.Enabled(),
		send:    func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// NewMailerWithSender usa un gomail.Sender arbitrario (relay propio, tests).
func NewMailerWithSender(from string, s gomail.Sender) *SMTPMailer {
	return &SMTPMailer{
		from:    from,
		enabled: true,
		send:    func(m *gomail.Message) error { return gomail.Send(s, m) },
	}
}

// Send arma el mensaje multiparte (texto + HTML) y lo entrega.
// gomail no acepta contexto: el envío corre aparte y se abandona si ctx vence.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if !m.enabled {
		return fmt.Errorf("%w: SMTP_HOST no configurado", domain.ErrProviderUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	gm.AddAlternative("text/html", msg.HTMLBody)

	done := make(chan error, 1)
	go func() { done <- m.send(gm) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar correo: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
