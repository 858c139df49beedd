package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// EmailTemplateRepository persistencia de plantillas de correo.
type EmailTemplateRepository interface {
	// Upsert crea o reemplaza la plantilla (tenant, key).
	Upsert(ctx context.Context, t *entity.EmailTemplate) (*entity.EmailTemplate, error)
	GetByKey(ctx context.Context, tenantID, key string) (*entity.EmailTemplate, error)
	List(ctx context.Context, tenantID string) ([]*entity.EmailTemplate, error)
}
