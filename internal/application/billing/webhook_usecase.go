package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// WebhookUseCase aplica los eventos del proveedor de pagos. Es el único que cambia
// el estado de los PaymentRecord.
type WebhookUseCase struct {
	verifier WebhookVerifier
	tx       PaymentTxRunner
	provider string
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewWebhookUseCase construye el caso de uso. verifier nil = webhooks deshabilitados.
func NewWebhookUseCase(verifier WebhookVerifier, tx PaymentTxRunner, provider string, metrics ports.Metrics, log *logger.Logger) *WebhookUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &WebhookUseCase{verifier: verifier, tx: tx, provider: provider, metrics: metrics, log: log.Component("webhooks")}
}

// Handle verifica la firma, decodifica el evento y lo aplica.
// Los tipos no manejados se registran y se aceptan.
func (uc *WebhookUseCase) Handle(ctx context.Context, payload []byte, signatureHeader string) error {
	if uc.verifier == nil {
		return fmt.Errorf("%w: secreto de webhook no configurado", ErrInvalidSignature)
	}
	ev, err := uc.verifier.ParseEvent(payload, signatureHeader)
	if err != nil {
		uc.log.Warn().Err(err).Msg("webhook rechazado")
		return err
	}
	uc.metrics.PaymentWebhook(ev.Type)

	switch ev.Type {
	case EventPaymentSucceeded:
		return uc.tx.RunPayments(ctx, func(payments repository.PaymentRepository, milestones repository.MilestoneRepository) error {
			return uc.succeeded(ctx, payments, milestones, ev)
		})
	case EventPaymentFailed:
		return uc.tx.RunPayments(ctx, func(payments repository.PaymentRepository, _ repository.MilestoneRepository) error {
			return uc.failed(ctx, payments, ev)
		})
	default:
		uc.log.Info().Str("event_id", ev.ID).Str("type", ev.Type).Msg("evento de pago no manejado")
		return nil
	}
}

func (uc *WebhookUseCase) succeeded(ctx context.Context, payments repository.PaymentRepository, milestones repository.MilestoneRepository, ev *PaymentEvent) error {
	now := time.Now()
	rec, err := payments.GetByExternalID(ctx, ev.PaymentIntentID)
	if err != nil {
		return err
	}
	milestoneID := ev.Metadata["milestoneId"]
	switch {
	case rec != nil:
		milestoneID = rec.MilestoneID
		if rec.Status != entity.PaymentStatusSucceeded {
			if err := payments.UpdateStatus(ctx, rec.ID, entity.PaymentStatusSucceeded, now); err != nil {
				return err
			}
		}
	case ev.Metadata["tenantId"] != "" && ev.Metadata["projectId"] != "" && milestoneID != "":
		// Sin registro previo (cobro creado fuera de la API): se crea desde la metadata
		// si el hito existe y pertenece al proyecto indicado.
		m, err := milestones.GetByID(ctx, ev.Metadata["tenantId"], milestoneID)
		if err != nil {
			return err
		}
		if m == nil || m.ProjectID != ev.Metadata["projectId"] {
			uc.log.Warn().Str("payment_intent_id", ev.PaymentIntentID).Str("milestone_id", milestoneID).
				Msg("metadata de pago no coincide con ningún hito; se ignora")
			return nil
		}
		rec = &entity.PaymentRecord{
			ID:                uuid.New().String(),
			TenantID:          m.TenantID,
			ProjectID:         m.ProjectID,
			MilestoneID:       milestoneID,
			ExternalPaymentID: ev.PaymentIntentID,
			Amount:            FromCents(ev.AmountCents),
			Currency:          strings.ToLower(ev.Currency),
			Status:            entity.PaymentStatusSucceeded,
			Provider:          uc.provider,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := payments.Create(ctx, rec); err != nil {
			return err
		}
	default:
		uc.log.Warn().Str("payment_intent_id", ev.PaymentIntentID).Msg("pago exitoso sin registro ni metadata completa; se ignora")
		return nil
	}

	if milestoneID != "" {
		if err := milestones.MarkPaid(ctx, milestoneID, now); err != nil {
			return fmt.Errorf("marcar hito pagado: %w", err)
		}
	}
	uc.log.Info().Str("payment_intent_id", ev.PaymentIntentID).Str("milestone_id", milestoneID).Msg("pago confirmado")
	return nil
}

func (uc *WebhookUseCase) failed(ctx context.Context, payments repository.PaymentRepository, ev *PaymentEvent) error {
	rec, err := payments.GetByExternalID(ctx, ev.PaymentIntentID)
	if err != nil {
		return err
	}
	if rec == nil {
		uc.log.Warn().Str("payment_intent_id", ev.PaymentIntentID).Msg("pago fallido sin registro local")
		return nil
	}
	// Un evento fallido tardío no revierte un pago ya confirmado.
	if rec.Status == entity.PaymentStatusSucceeded {
		uc.log.Warn().Str("payment_id", rec.ID).Msg("evento de pago fallido para un pago ya exitoso; se ignora")
		return nil
	}
	return payments.UpdateStatus(ctx, rec.ID, entity.PaymentStatusFailed, time.Now())
}
