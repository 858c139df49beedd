package dto

import "time"

// UpsertEmailTemplateRequest cuerpo de PUT /settings/email-templates/:key.
type UpsertEmailTemplateRequest struct {
	Subject string `json:"subject" validate:"required,max=300"`
	Body    string `json:"body" validate:"required"`
}

// EmailTemplateResponse plantilla en respuestas HTTP.
type EmailTemplateResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SendEmailRequest envío de un correo a partir de una plantilla.
type SendEmailRequest struct {
	TemplateKey string            `json:"templateKey" validate:"required"`
	ToEmail     string            `json:"toEmail" validate:"required,email"`
	Data        map[string]string `json:"data"`
}

// SendEmailResponse resultado del envío.
type SendEmailResponse struct {
	Sent    bool   `json:"sent"`
	Subject string `json:"subject"`
}
