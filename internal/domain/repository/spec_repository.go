package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// SpecRepository persistencia de specs (project products).
type SpecRepository interface {
	Create(ctx context.Context, s *entity.ProjectProduct) error
	Update(ctx context.Context, s *entity.ProjectProduct) error
	Delete(ctx context.Context, tenantID, id string) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ProjectProduct, error)
	// ListByProject lista los specs del proyecto; spaceID vacío = todos los espacios.
	ListByProject(ctx context.Context, tenantID, projectID, spaceID string) ([]*entity.ProjectProduct, error)
	// ListByTag devuelve los specs del proyecto con exactamente ese tag.
	ListByTag(ctx context.Context, projectID, tag string) ([]*entity.ProjectProduct, error)
	// SetTagConflict escribe el flag en todos los ids indicados.
	SetTagConflict(ctx context.Context, ids []string, conflict bool) error
}
