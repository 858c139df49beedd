package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// TimeEntryRepository persistencia de horas trabajadas.
type TimeEntryRepository interface {
	Create(ctx context.Context, e *entity.TimeEntry) error
	Delete(ctx context.Context, tenantID, id string) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.TimeEntry, error)
	// ListByProject ordena por fecha descendente.
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.TimeEntry, error)
}
