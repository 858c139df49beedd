package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/geo"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// ProjectUseCase casos de uso de proyectos.
type ProjectUseCase struct {
	projects  repository.ProjectRepository
	clients   repository.ClientRepository
	locations repository.LocationRepository
	log       *logger.Logger
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	locations repository.LocationRepository,
	log *logger.Logger,
) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, clients: clients, locations: locations, log: log.Component("projects")}
}

// Create crea un proyecto. Si trae coordenadas se le asigna la sede más cercana del estudio.
func (uc *ProjectUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.ClientID != nil && *in.ClientID != "" {
		c, err := uc.clients.GetByID(ctx, tenantID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: cliente %s no existe", domain.ErrInvalidInput, *in.ClientID)
		}
	} else {
		in.ClientID = nil
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, fmt.Errorf("%w: lat y lng van juntos", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectStatusProspect
	}
	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ClientID:    in.ClientID,
		Name:        strings.TrimSpace(in.Name),
		Status:      status,
		Address:     in.Address,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Lat != nil {
		if err := uc.assignNearestLocation(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProjectResponse(p)
	return &out, nil
}

func (uc *ProjectUseCase) assignNearestLocation(ctx context.Context, p *entity.Project) error {
	locs, err := uc.locations.List(ctx, p.TenantID)
	if err != nil {
		return err
	}
	nearest, km, ok := geo.Nearest(toPoints(locs), *p.Lat, *p.Lng)
	if !ok {
		return nil
	}
	id := nearest.ID
	p.AssignedLocationID = &id
	uc.log.Info().Str("project_id", p.ID).Str("location_id", id).
		Float64("distance_km", km).Msg("sede asignada al proyecto")
	return nil
}

// Get obtiene un proyecto del estudio.
func (uc *ProjectUseCase) Get(ctx context.Context, tenantID, id string) (*dto.ProjectResponse, error) {
	p, err := uc.projects.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, id)
	}
	out := toProjectResponse(p)
	return &out, nil
}

// List lista los proyectos del estudio.
func (uc *ProjectUseCase) List(ctx context.Context, tenantID string, page dto.Page) (*dto.Paginated[dto.ProjectResponse], error) {
	page = page.Normalize()
	list, err := uc.projects.List(ctx, tenantID, page.FetchLimit(), page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProjectResponse(p))
	}
	out := dto.NewPaginated(items, page)
	return &out, nil
}

// UpdateStatus cambia el estado del proyecto.
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, tenantID, id, status string) (*dto.ProjectResponse, error) {
	if !entity.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	p, err := uc.projects.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, id)
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	if err := uc.projects.UpdateStatus(ctx, tenantID, id, status, p.UpdatedAt); err != nil {
		return nil, err
	}
	out := toProjectResponse(p)
	return &out, nil
}

func toProjectResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:                 p.ID,
		ClientID:           p.ClientID,
		Name:               p.Name,
		Status:             p.Status,
		Address:            p.Address,
		Lat:                p.Lat,
		Lng:                p.Lng,
		AssignedLocationID: p.AssignedLocationID,
		Description:        p.Description,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
