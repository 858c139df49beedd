package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// IntakeRepository formularios públicos y sus respuestas.
type IntakeRepository interface {
	CreateForm(ctx context.Context, f *entity.IntakeForm) error
	// GetFormBySlug no filtra por tenant: el slug es global.
	GetFormBySlug(ctx context.Context, slug string) (*entity.IntakeForm, error)
	GetForm(ctx context.Context, tenantID, id string) (*entity.IntakeForm, error)
	ListForms(ctx context.Context, tenantID string) ([]*entity.IntakeForm, error)

	CreateSubmission(ctx context.Context, s *entity.IntakeSubmission) error
	ResolveSubmission(ctx context.Context, id, projectID string) error
	ListSubmissions(ctx context.Context, tenantID, formID string) ([]*entity.IntakeSubmission, error)
}
