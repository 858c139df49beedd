package repository

import (
	"context"
	"time"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// MilestoneRepository persistencia de hitos de cobro.
type MilestoneRepository interface {
	Create(ctx context.Context, m *entity.ProjectMilestone) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ProjectMilestone, error)
	// ListByProject ordena por fecha objetivo (sin fecha al final).
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.ProjectMilestone, error)
	MarkPaid(ctx context.Context, id string, at time.Time) error
}

// PaymentRepository persistencia de intentos de pago.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.PaymentRecord) error
	GetByExternalID(ctx context.Context, externalPaymentID string) (*entity.PaymentRecord, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
