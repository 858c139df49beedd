package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// MilestoneUseCase hitos de cobro de un proyecto y su pago.
type MilestoneUseCase struct {
	milestones repository.MilestoneRepository
	payments   repository.PaymentRepository
	projects   repository.ProjectRepository
	provider   PaymentProvider
	currency   string
	log        *logger.Logger
}

// NewMilestoneUseCase construye el caso de uso. provider puede ser nil (pagos deshabilitados).
func NewMilestoneUseCase(
	milestones repository.MilestoneRepository,
	payments repository.PaymentRepository,
	projects repository.ProjectRepository,
	provider PaymentProvider,
	currency string,
	log *logger.Logger,
) *MilestoneUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &MilestoneUseCase{
		milestones: milestones, payments: payments, projects: projects,
		provider: provider, currency: strings.ToLower(currency), log: log.Component("billing"),
	}
}

// Create crea un hito de cobro.
func (uc *MilestoneUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	if err := uc.requireProject(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := time.Now()
	m := &entity.ProjectMilestone{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		ProjectID:  projectID,
		Name:       strings.TrimSpace(in.Name),
		TargetDate: in.TargetDate,
		Amount:     in.Amount.Round(2),
		AutoCharge: in.AutoCharge,
		Status:     entity.MilestoneStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMilestoneResponse(m)
	return &out, nil
}

// List lista los hitos del proyecto por fecha objetivo.
func (uc *MilestoneUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.MilestoneResponse, error) {
	if err := uc.requireProject(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.milestones.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MilestoneResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMilestoneResponse(m))
	}
	return out, nil
}

// Pay crea un intento de pago para el hito y registra el PaymentRecord en estado pending.
// El estado final llega por webhook.
func (uc *MilestoneUseCase) Pay(ctx context.Context, tenantID, projectID, milestoneID string) (*dto.PayMilestoneResponse, error) {
	m, err := uc.milestones.GetByID(ctx, tenantID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: hito %s", domain.ErrNotFound, milestoneID)
	}
	if m.ProjectID != projectID {
		return nil, fmt.Errorf("%w: el hito no pertenece al proyecto", domain.ErrInvalidInput)
	}
	if m.Status == entity.MilestoneStatusPaid {
		return nil, fmt.Errorf("%w: el hito ya está pagado", domain.ErrConflict)
	}
	if uc.provider == nil {
		return nil, fmt.Errorf("%w: pagos", domain.ErrProviderUnavailable)
	}

	intent, err := uc.provider.CreatePaymentIntent(ctx, PaymentIntentInput{
		AmountCents: ToCents(m.Amount),
		Currency:    uc.currency,
		Description: m.Name,
		Metadata: map[string]string{
			"tenantId":    tenantID,
			"projectId":   projectID,
			"milestoneId": m.ID,
		},
		IdempotencyKey: "milestone-" + m.ID + "-" + uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &entity.PaymentRecord{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		ProjectID:         projectID,
		MilestoneID:       m.ID,
		ExternalPaymentID: intent.ID,
		Amount:            m.Amount,
		Currency:          uc.currency,
		Status:            entity.PaymentStatusPending,
		Provider:          uc.provider.Name(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.payments.Create(ctx, rec); err != nil {
		return nil, err
	}
	uc.log.Info().Str("milestone_id", m.ID).Str("payment_intent_id", intent.ID).Msg("intento de pago creado")
	return &dto.PayMilestoneResponse{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

func (uc *MilestoneUseCase) requireProject(ctx context.Context, tenantID, projectID string) error {
	p, err := uc.projects.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, projectID)
	}
	return nil
}

// ToCents convierte un monto a la unidad mínima de la moneda (redondeo a centavos).
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromCents convierte centavos en monto decimal.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

func toMilestoneResponse(m *entity.ProjectMilestone) dto.MilestoneResponse {
	return dto.MilestoneResponse{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		Name:       m.Name,
		TargetDate: m.TargetDate,
		Amount:     m.Amount,
		AutoCharge: m.AutoCharge,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}
