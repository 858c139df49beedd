package repository

import (
	"context"
	"time"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// ProjectRepository persistencia de proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Project, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string, at time.Time) error
}

// SpaceRepository persistencia de espacios de un proyecto.
type SpaceRepository interface {
	Create(ctx context.Context, s *entity.Space) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Space, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Space, error)
}

// ClientRepository persistencia de clientes del estudio.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Client, error)
	// FindByEmail busca sin distinguir mayúsculas; nil si no existe.
	FindByEmail(ctx context.Context, tenantID, email string) (*entity.Client, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Client, error)
}

// LocationRepository persistencia de sedes del estudio.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.TenantLocation) error
	List(ctx context.Context, tenantID string) ([]*entity.TenantLocation, error)
}
