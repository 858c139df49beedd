package ports

import "context"

// EmailMessage correo ya renderizado.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer envía correos. Devuelve domain.ErrProviderUnavailable si no hay SMTP configurado.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// MarkdownRenderer convierte markdown en HTML seguro para correo.
type MarkdownRenderer interface {
	ToHTML(markdown string) (string, error)
}
