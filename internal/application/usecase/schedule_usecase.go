package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// ScheduleUseCase arma el cronograma de specs de un proyecto y lo exporta a PDF.
type ScheduleUseCase struct {
	projects repository.ProjectRepository
	spaces   repository.SpaceRepository
	specs    repository.SpecRepository
	catalog  *CatalogUseCase
	pdf      ports.SchedulePDFGenerator
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(
	projects repository.ProjectRepository,
	spaces repository.SpaceRepository,
	specs repository.SpecRepository,
	catalog *CatalogUseCase,
	pdf ports.SchedulePDFGenerator,
) *ScheduleUseCase {
	return &ScheduleUseCase{projects: projects, spaces: spaces, specs: specs, catalog: catalog, pdf: pdf}
}

// Build devuelve el documento del cronograma: una línea por spec, ordenada por tag e ítem,
// con el precio efectivo del estudio.
func (uc *ScheduleUseCase) Build(ctx context.Context, tenantID, projectID string) (*dto.ScheduleDocument, error) {
	project, err := uc.projects.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, projectID)
	}
	spaces, err := uc.spaces.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	spaceNames := make(map[string]string, len(spaces))
	for _, s := range spaces {
		spaceNames[s.ID] = s.Name
	}
	specs, err := uc.specs.ListByProject(ctx, tenantID, projectID, "")
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, len(specs))
	for i, s := range specs {
		productIDs[i] = s.ProductID
	}
	resolved, err := uc.catalog.ResolveMany(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.ScheduleLine, 0, len(specs))
	for _, s := range specs {
		line := dto.ScheduleLine{
			Tag:         s.Tag(),
			Item:        s.ElementLabel,
			Space:       spaceNames[s.SpaceID],
			Quantity:    s.Quantity,
			Unit:        s.Unit,
			TagConflict: s.TagConflict,
		}
		if r, ok := resolved[s.ProductID]; ok {
			if line.Item == "" {
				line.Item = r.Product.Name
			}
			line.UnitPrice = r.EffectivePrice()
		}
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Tag != lines[j].Tag {
			// Sin tag al final.
			if lines[i].Tag == "" || lines[j].Tag == "" {
				return lines[j].Tag == ""
			}
			return lines[i].Tag < lines[j].Tag
		}
		return lines[i].Item < lines[j].Item
	})
	return &dto.ScheduleDocument{
		ProjectName: project.Name,
		Address:     project.Address,
		GeneratedAt: time.Now(),
		Lines:       lines,
	}, nil
}

// PDF genera el cronograma en PDF.
func (uc *ScheduleUseCase) PDF(ctx context.Context, tenantID, projectID string) ([]byte, error) {
	doc, err := uc.Build(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSchedule(ctx, *doc)
}
