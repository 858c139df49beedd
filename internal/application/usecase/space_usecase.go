package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// SpaceUseCase espacios (ambientes) de un proyecto.
type SpaceUseCase struct {
	spaces   repository.SpaceRepository
	projects repository.ProjectRepository
}

// NewSpaceUseCase construye el caso de uso.
func NewSpaceUseCase(spaces repository.SpaceRepository, projects repository.ProjectRepository) *SpaceUseCase {
	return &SpaceUseCase{spaces: spaces, projects: projects}
}

// Create agrega un espacio al proyecto.
func (uc *SpaceUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateSpaceRequest) (*dto.SpaceResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	s := &entity.Space{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ProjectID: projectID,
		Name:      strings.TrimSpace(in.Name),
		SortOrder: in.SortOrder,
		CreatedAt: time.Now(),
	}
	if err := uc.spaces.Create(ctx, s); err != nil {
		return nil, err
	}
	out := toSpaceResponse(s)
	return &out, nil
}

// List lista los espacios del proyecto por orden.
func (uc *SpaceUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.SpaceResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.spaces.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpaceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSpaceResponse(s))
	}
	return out, nil
}

func toSpaceResponse(s *entity.Space) dto.SpaceResponse {
	return dto.SpaceResponse{ID: s.ID, ProjectID: s.ProjectID, Name: s.Name, SortOrder: s.SortOrder, CreatedAt: s.CreatedAt}
}
