package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// TaskRepository persistencia de tareas de proyecto.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, tenantID, id string) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Task, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Task, error)
}
