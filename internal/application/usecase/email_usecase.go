package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

var (
	templateKeyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
	placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)
)

// EmailUseCase plantillas de correo del estudio y envío.
type EmailUseCase struct {
	templates repository.EmailTemplateRepository
	renderer  ports.MarkdownRenderer
	mailer    ports.Mailer
	log       *logger.Logger
}

// NewEmailUseCase construye el caso de uso.
func NewEmailUseCase(
	templates repository.EmailTemplateRepository,
	renderer ports.MarkdownRenderer,
	mailer ports.Mailer,
	log *logger.Logger,
) *EmailUseCase {
	return &EmailUseCase{templates: templates, renderer: renderer, mailer: mailer, log: log.Component("email")}
}

// ListTemplates lista las plantillas del estudio.
func (uc *EmailUseCase) ListTemplates(ctx context.Context, tenantID string) ([]dto.EmailTemplateResponse, error) {
	list, err := uc.templates.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmailTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toEmailTemplateResponse(t))
	}
	return out, nil
}

// UpsertTemplate crea o reemplaza la plantilla identificada por key.
func (uc *EmailUseCase) UpsertTemplate(ctx context.Context, tenantID, key string, in dto.UpsertEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if !templateKeyRe.MatchString(key) {
		return nil, fmt.Errorf("%w: key %q (minúsculas, dígitos, '-' o '_')", domain.ErrInvalidInput, key)
	}
	now := time.Now()
	saved, err := uc.templates.Upsert(ctx, &entity.EmailTemplate{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Key:       key,
		Subject:   in.Subject,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	out := toEmailTemplateResponse(saved)
	return &out, nil
}

// Send rellena la plantilla con data, la convierte a HTML y la envía.
func (uc *EmailUseCase) Send(ctx context.Context, tenantID string, in dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	tpl, err := uc.templates.GetByKey(ctx, tenantID, in.TemplateKey)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: plantilla %s", domain.ErrNotFound, in.TemplateKey)
	}
	subject := FillPlaceholders(tpl.Subject, in.Data)
	body := FillPlaceholders(tpl.Body, in.Data)
	html, err := uc.renderer.ToHTML(body)
	if err != nil {
		return nil, fmt.Errorf("renderizar plantilla: %w", err)
	}
	err = uc.mailer.Send(ctx, ports.EmailMessage{
		To:       in.ToEmail,
		Subject:  subject,
		HTMLBody: html,
		TextBody: body,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("template", tpl.Key).Msg("correo enviado")
	return &dto.SendEmailResponse{Sent: true, Subject: subject}, nil
}

// FillPlaceholders reemplaza cada {{clave}} por data[clave]. Claves ausentes quedan vacías.
func FillPlaceholders(text string, data map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		return data[key]
	})
}

func toEmailTemplateResponse(t *entity.EmailTemplate) dto.EmailTemplateResponse {
	return dto.EmailTemplateResponse{ID: t.ID, Key: t.Key, Subject: t.Subject, Body: t.Body, UpdatedAt: t.UpdatedAt}
}
