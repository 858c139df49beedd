package repository

import (
	"context"
	"time"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// ContractTemplateRepository persistencia de plantillas de contrato.
type ContractTemplateRepository interface {
	Create(ctx context.Context, t *entity.ContractTemplate) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ContractTemplate, error)
	List(ctx context.Context, tenantID string) ([]*entity.ContractTemplate, error)
}

// ContractRepository persistencia de contratos y sus enmiendas.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Contract, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Contract, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string, at time.Time) error

	CreateAmendment(ctx context.Context, a *entity.Amendment) error
	GetAmendment(ctx context.Context, tenantID, id string) (*entity.Amendment, error)
	// ListAmendments devuelve las enmiendas de los contratos dados, por fecha de alta.
	ListAmendments(ctx context.Context, tenantID string, contractIDs []string) ([]*entity.Amendment, error)
}
