package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// Tipos de evento del proveedor de pagos que se procesan.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// ErrInvalidSignature el webhook no trae una firma válida para el secreto configurado.
var ErrInvalidSignature = fmt.Errorf("%w: firma de webhook inválida", domain.ErrInvalidInput)

// PaymentIntentInput datos para crear un intento de pago.
type PaymentIntentInput struct {
	AmountCents    int64
	Currency       string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

// PaymentIntent intento de pago creado en el proveedor.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentProvider puerto hacia el proveedor de pagos (Stripe).
// Devuelve domain.ErrProviderUnavailable si no está configurado.
type PaymentProvider interface {
	Name() string
	CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (*PaymentIntent, error)
}

// PaymentEvent evento de webhook ya verificado.
type PaymentEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
	AmountCents     int64
	Currency        string
	Metadata        map[string]string
}

// WebhookVerifier valida la firma de un webhook y lo decodifica.
type WebhookVerifier interface {
	ParseEvent(payload []byte, signatureHeader string) (*PaymentEvent, error)
}

// PaymentTxRunner ejecuta fn con repos de pagos e hitos atados a una transacción.
type PaymentTxRunner interface {
	RunPayments(ctx context.Context, fn func(
		payments repository.PaymentRepository,
		milestones repository.MilestoneRepository,
	) error) error
}
