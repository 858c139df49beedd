package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/internal/domain/tags"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// SpecTxRunner ejecuta fn con un SpecRepository atado a una transacción.
type SpecTxRunner interface {
	RunSpecs(ctx context.Context, fn func(specs repository.SpecRepository) error) error
}

// SpecUseCase alta, edición y baja de specs con recálculo de conflictos de tag.
type SpecUseCase struct {
	specs    repository.SpecRepository
	projects repository.ProjectRepository
	spaces   repository.SpaceRepository
	products repository.ProductRepository
	tx       SpecTxRunner
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewSpecUseCase construye el caso de uso.
func NewSpecUseCase(
	specs repository.SpecRepository,
	projects repository.ProjectRepository,
	spaces repository.SpaceRepository,
	products repository.ProductRepository,
	tx SpecTxRunner,
	metrics ports.Metrics,
	log *logger.Logger,
) *SpecUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &SpecUseCase{
		specs: specs, projects: projects, spaces: spaces, products: products,
		tx: tx, metrics: metrics, log: log.Component("specs"),
	}
}

// List lista los specs del proyecto, opcionalmente de un solo espacio.
func (uc *SpecUseCase) List(ctx context.Context, tenantID, projectID, spaceID string) ([]dto.SpecResponse, error) {
	if err := uc.requireProject(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.specs.ListByProject(ctx, tenantID, projectID, spaceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpecResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSpecResponse(s))
	}
	return out, nil
}

// Create agrega un producto a un espacio del proyecto y recalcula el conflicto de su tag.
func (uc *SpecUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateSpecRequest) (*dto.SpecResponse, error) {
	if err := uc.requireProject(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	if err := uc.requireSpace(ctx, tenantID, projectID, in.SpaceID); err != nil {
		return nil, err
	}
	if err := uc.requireProduct(ctx, tenantID, in.ProductID); err != nil {
		return nil, err
	}
	qty := decimal.NewFromInt(1)
	if in.Quantity != nil {
		if !in.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
		}
		qty = *in.Quantity
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "ea"
	}
	now := time.Now()
	s := &entity.ProjectProduct{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		ProjectID:    projectID,
		SpaceID:      in.SpaceID,
		ProductID:    in.ProductID,
		ElementKey:   in.ElementKey,
		ElementLabel: in.ElementLabel,
		Quantity:     qty,
		Unit:         unit,
		ProjectTag:   tagPtr(in.ProjectTag),
		Notes:        in.Notes,
		ClientStatus: entity.ClientStatusProposed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.RunSpecs(ctx, func(specs repository.SpecRepository) error {
		if err := specs.Create(ctx, s); err != nil {
			return err
		}
		conflict, err := uc.recheck(ctx, specs, projectID, s.Tag())
		if err != nil {
			return err
		}
		s.TagConflict = conflict
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSpecResponse(s)
	return &out, nil
}

// Update aplica una actualización parcial. Recalcula el tag nuevo y, si cambió, también el anterior.
func (uc *SpecUseCase) Update(ctx context.Context, tenantID, projectID, specID string, in dto.UpdateSpecRequest) (*dto.SpecResponse, error) {
	s, err := uc.projectSpec(ctx, tenantID, projectID, specID)
	if err != nil {
		return nil, err
	}
	oldTag := s.Tag()

	if in.SpaceID != nil && *in.SpaceID != s.SpaceID {
		if err := uc.requireSpace(ctx, tenantID, projectID, *in.SpaceID); err != nil {
			return nil, err
		}
		s.SpaceID = *in.SpaceID
	}
	if in.ProductID != nil && *in.ProductID != s.ProductID {
		if err := uc.requireProduct(ctx, tenantID, *in.ProductID); err != nil {
			return nil, err
		}
		s.ProductID = *in.ProductID
	}
	if in.ElementKey != nil {
		s.ElementKey = *in.ElementKey
	}
	if in.ElementLabel != nil {
		s.ElementLabel = *in.ElementLabel
	}
	if in.Quantity != nil {
		if !in.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
		}
		s.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		s.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.ProjectTag != nil {
		s.ProjectTag = tagPtr(in.ProjectTag)
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	if in.ClientStatus != nil {
		s.ClientStatus = *in.ClientStatus
	}
	s.UpdatedAt = time.Now()

	err = uc.tx.RunSpecs(ctx, func(specs repository.SpecRepository) error {
		if err := specs.Update(ctx, s); err != nil {
			return err
		}
		s.TagConflict = false
		// Un spec sin tag nunca queda marcado; el rechequeo del tag anterior ya no lo incluye.
		if s.Tag() == "" {
			if err := specs.SetTagConflict(ctx, []string{s.ID}, false); err != nil {
				return fmt.Errorf("actualizar tag_conflict: %w", err)
			}
		}
		for _, tag := range tags.Affected(oldTag, s.Tag()) {
			conflict, err := uc.recheck(ctx, specs, projectID, tag)
			if err != nil {
				return err
			}
			if tag == s.Tag() {
				s.TagConflict = conflict
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSpecResponse(s)
	return &out, nil
}

// Delete elimina el spec y recalcula el conflicto del tag que tenía.
func (uc *SpecUseCase) Delete(ctx context.Context, tenantID, projectID, specID string) error {
	s, err := uc.projectSpec(ctx, tenantID, projectID, specID)
	if err != nil {
		return err
	}
	return uc.tx.RunSpecs(ctx, func(specs repository.SpecRepository) error {
		if err := specs.Delete(ctx, tenantID, s.ID); err != nil {
			return err
		}
		_, err := uc.recheck(ctx, specs, projectID, s.Tag())
		return err
	})
}

// RecheckTag recalcula el flag de conflicto de todos los specs del proyecto con ese tag.
// Tag vacío no hace nada. Es idempotente.
func (uc *SpecUseCase) RecheckTag(ctx context.Context, projectID, tag string) (bool, error) {
	return uc.recheck(ctx, uc.specs, projectID, tag)
}

func (uc *SpecUseCase) recheck(ctx context.Context, specs repository.SpecRepository, projectID, tag string) (bool, error) {
	if tag == "" {
		return false, nil
	}
	list, err := specs.ListByTag(ctx, projectID, tag)
	if err != nil {
		return false, fmt.Errorf("listar specs por tag: %w", err)
	}
	if len(list) == 0 {
		return false, nil
	}
	tagged := make([]tags.TaggedSpec, len(list))
	ids := make([]string, len(list))
	for i, s := range list {
		tagged[i] = tags.TaggedSpec{ID: s.ID, ProductID: s.ProductID}
		ids[i] = s.ID
	}
	conflict, distinct := tags.Detect(tagged)
	if err := specs.SetTagConflict(ctx, ids, conflict); err != nil {
		return false, fmt.Errorf("actualizar tag_conflict: %w", err)
	}
	uc.metrics.TagConflictChecked(conflict)
	if conflict {
		uc.log.Info().Str("project_id", projectID).Str("tag", tag).
			Int("specs", len(ids)).Int("products", distinct).Msg("conflicto de tag detectado")
	}
	return conflict, nil
}

func (uc *SpecUseCase) projectSpec(ctx context.Context, tenantID, projectID, specID string) (*entity.ProjectProduct, error) {
	s, err := uc.specs.GetByID(ctx, tenantID, specID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.ProjectID != projectID {
		return nil, fmt.Errorf("%w: spec %s", domain.ErrNotFound, specID)
	}
	return s, nil
}

func (uc *SpecUseCase) requireProject(ctx context.Context, tenantID, projectID string) error {
	return requireProject(ctx, uc.projects, tenantID, projectID)
}

func (uc *SpecUseCase) requireSpace(ctx context.Context, tenantID, projectID, spaceID string) error {
	sp, err := uc.spaces.GetByID(ctx, tenantID, spaceID)
	if err != nil {
		return err
	}
	if sp == nil || sp.ProjectID != projectID {
		return fmt.Errorf("%w: el espacio no pertenece al proyecto", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *SpecUseCase) requireProduct(ctx context.Context, tenantID, productID string) error {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.VisibleTo(tenantID) {
		return fmt.Errorf("%w: producto no disponible para el estudio", domain.ErrInvalidInput)
	}
	return nil
}

// requireProject verifica que el proyecto exista y pertenezca al estudio.
func requireProject(ctx context.Context, projects repository.ProjectRepository, tenantID, projectID string) error {
	p, err := projects.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, projectID)
	}
	return nil
}

// tagPtr normaliza el tag recibido: nil o "" significan sin tag. El valor no se altera.
func tagPtr(tag *string) *string {
	if tag == nil || *tag == "" {
		return nil
	}
	v := *tag
	return &v
}

func toSpecResponse(s *entity.ProjectProduct) dto.SpecResponse {
	return dto.SpecResponse{
		ID:           s.ID,
		ProjectID:    s.ProjectID,
		SpaceID:      s.SpaceID,
		ProductID:    s.ProductID,
		ElementKey:   s.ElementKey,
		ElementLabel: s.ElementLabel,
		Quantity:     s.Quantity,
		Unit:         s.Unit,
		ProjectTag:   s.ProjectTag,
		TagConflict:  s.TagConflict,
		Notes:        s.Notes,
		ClientStatus: s.ClientStatus,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
