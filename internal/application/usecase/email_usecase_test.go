package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

type wrapRenderer struct{}

func (wrapRenderer) ToHTML(md string) (string, error) { return "<p>" + md + "</p>", nil }

type captureMailer struct {
	sent []ports.EmailMessage
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestFillPlaceholders(t *testing.T) {
	out := usecase.FillPlaceholders("Hola {{clientName}}, tu proyecto {{ project }} {{falta}}.", map[string]string{
		"clientName": "Ana",
		"project":    "Loft",
	})
	assert.Equal(t, "Hola Ana, tu proyecto Loft .", out)
}

func TestEmail_EnviarPlantilla(t *testing.T) {
	st := memstore.New()
	mailer := &captureMailer{}
	uc := usecase.NewEmailUseCase(st.EmailTemplates(), wrapRenderer{}, mailer, logger.Nop())
	ctx := context.Background()

	_, err := uc.UpsertTemplate(ctx, tenantA, "welcome", dto.UpsertEmailTemplateRequest{
		Subject: "Bienvenida {{clientName}}",
		Body:    "**Hola {{clientName}}**",
	})
	require.NoError(t, err)

	out, err := uc.Send(ctx, tenantA, dto.SendEmailRequest{
		TemplateKey: "welcome", ToEmail: "ana@example.com", Data: map[string]string{"clientName": "Ana"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bienvenida Ana", out.Subject)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "<p>**Hola Ana**</p>", mailer.sent[0].HTMLBody)
	assert.Equal(t, "ana@example.com", mailer.sent[0].To)
}

func TestEmail_PlantillaInexistenteYSMTPNoConfigurado(t *testing.T) {
	st := memstore.New()
	mailer := &captureMailer{err: domain.ErrProviderUnavailable}
	uc := usecase.NewEmailUseCase(st.EmailTemplates(), wrapRenderer{}, mailer, logger.Nop())
	ctx := context.Background()

	_, err := uc.Send(ctx, tenantA, dto.SendEmailRequest{TemplateKey: "nada", ToEmail: "a@b.co"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.UpsertTemplate(ctx, tenantA, "welcome", dto.UpsertEmailTemplateRequest{Subject: "s", Body: "b"})
	require.NoError(t, err)
	_, err = uc.Send(ctx, tenantA, dto.SendEmailRequest{TemplateKey: "welcome", ToEmail: "a@b.co"})
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestEmail_KeyInvalido(t *testing.T) {
	uc := usecase.NewEmailUseCase(memstore.New().EmailTemplates(), wrapRenderer{}, &captureMailer{}, logger.Nop())
	_, err := uc.UpsertTemplate(context.Background(), tenantA, "Con Espacios", dto.UpsertEmailTemplateRequest{Subject: "s", Body: "b"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
