package billing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

const tenantID = "tenant-a"

type fakeProvider struct {
	last billing.PaymentIntentInput
	err  error
}

func (f *fakeProvider) Name() string { return "stripe" }

func (f *fakeProvider) CreatePaymentIntent(_ context.Context, in billing.PaymentIntentInput) (*billing.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = in
	return &billing.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc", Status: "requires_payment_method"}, nil
}

// fakeVerifier acepta solo la firma "ok" y devuelve el evento preparado.
type fakeVerifier struct{ event *billing.PaymentEvent }

func (f *fakeVerifier) ParseEvent(_ []byte, sig string) (*billing.PaymentEvent, error) {
	if sig != "ok" {
		return nil, billing.ErrInvalidSignature
	}
	return f.event, nil
}

func seed(t *testing.T, st *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.Projects().Create(ctx, &entity.Project{ID: "p1", TenantID: tenantID, Name: "Loft"}))
	require.NoError(t, st.Projects().Create(ctx, &entity.Project{ID: "p2", TenantID: tenantID, Name: "Casa"}))
	require.NoError(t, st.Milestones().Create(ctx, &entity.ProjectMilestone{
		ID: "m1", TenantID: tenantID, ProjectID: "p1", Name: "Anticipo",
		Amount: decimal.RequireFromString("1250.50"), Status: entity.MilestoneStatusPending,
	}))
}

// ── Hitos ─────────────────────────────────────────────────────────────────────

func TestMilestone_ListaOrdenadaPorFecha(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	uc := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), nil, "usd", logger.Nop())
	ctx := context.Background()

	later := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Create(ctx, tenantID, "p1", dto.CreateMilestoneRequest{Name: "Entrega", TargetDate: &later, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, tenantID, "p1", dto.CreateMilestoneRequest{Name: "Diseño", TargetDate: &sooner, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)

	list, err := uc.List(ctx, tenantID, "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Diseño", list[0].Name)
	assert.Equal(t, "Entrega", list[1].Name)
	assert.Equal(t, "Anticipo", list[2].Name, "sin fecha al final")

	_, err = uc.Create(ctx, tenantID, "p1", dto.CreateMilestoneRequest{Name: "Cero", Amount: decimal.Zero})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMilestone_PagarCreaRegistroPendiente(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	prov := &fakeProvider{}
	uc := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), prov, "USD", logger.Nop())

	out, err := uc.Pay(context.Background(), tenantID, "p1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", out.ClientSecret)
	assert.Equal(t, "pi_123", out.PaymentIntentID)

	assert.Equal(t, int64(125050), prov.last.AmountCents)
	assert.Equal(t, "usd", prov.last.Currency)
	assert.Equal(t, map[string]string{"tenantId": tenantID, "projectId": "p1", "milestoneId": "m1"}, prov.last.Metadata)

	rec, err := st.Payments().GetByExternalID(context.Background(), "pi_123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, entity.PaymentStatusPending, rec.Status)
	assert.Equal(t, "stripe", rec.Provider)
}

func TestMilestone_PagarErrores(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	ctx := context.Background()

	withProvider := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), &fakeProvider{}, "usd", logger.Nop())
	_, err := withProvider.Pay(ctx, tenantID, "p1", "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = withProvider.Pay(ctx, tenantID, "p2", "m1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "hito de otro proyecto => 400")

	_, err = withProvider.Pay(ctx, "tenant-b", "p1", "m1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "hito de otro estudio")

	noProvider := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), nil, "usd", logger.Nop())
	_, err = noProvider.Pay(ctx, tenantID, "p1", "m1")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(650000), billing.ToCents(decimal.RequireFromString("6500.00")))
	assert.Equal(t, int64(1), billing.ToCents(decimal.RequireFromString("0.005")))
	assert.True(t, billing.FromCents(125050).Equal(decimal.RequireFromString("1250.50")))
}

// ── Webhooks ──────────────────────────────────────────────────────────────────

func newWebhook(st *memstore.Store, ev *billing.PaymentEvent) *billing.WebhookUseCase {
	return billing.NewWebhookUseCase(&fakeVerifier{event: ev}, st, "stripe", nil, logger.Nop())
}

func TestWebhook_FirmaInvalida(t *testing.T) {
	st := memstore.New()
	err := newWebhook(st, nil).Handle(context.Background(), []byte("{}"), "mala")
	assert.True(t, errors.Is(err, billing.ErrInvalidSignature))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWebhook_ExitosoActualizaRegistroYMarcaHito(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	ctx := context.Background()
	uc := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), &fakeProvider{}, "usd", logger.Nop())
	_, err := uc.Pay(ctx, tenantID, "p1", "m1")
	require.NoError(t, err)

	ev := &billing.PaymentEvent{ID: "evt_1", Type: billing.EventPaymentSucceeded, PaymentIntentID: "pi_123", AmountCents: 125050, Currency: "usd"}
	require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"))

	rec, err := st.Payments().GetByExternalID(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSucceeded, rec.Status)

	m, err := st.Milestones().GetByID(ctx, tenantID, "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.MilestoneStatusPaid, m.Status)

	// Reentrega del mismo evento: sin duplicados.
	require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"))
	assert.Len(t, st.Payments().All(), 1)
}

func TestWebhook_ExitosoSinRegistroCreaDesdeMetadata(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	ctx := context.Background()
	ev := &billing.PaymentEvent{
		ID: "evt_2", Type: billing.EventPaymentSucceeded, PaymentIntentID: "pi_ext", AmountCents: 9900, Currency: "USD",
		Metadata: map[string]string{"tenantId": tenantID, "projectId": "p1", "milestoneId": "m1"},
	}
	require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"))

	rec, err := st.Payments().GetByExternalID(ctx, "pi_ext")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, entity.PaymentStatusSucceeded, rec.Status)
	assert.True(t, rec.Amount.Equal(decimal.NewFromInt(99)))
	assert.Equal(t, "usd", rec.Currency)
}

func TestWebhook_ExitosoSinRegistroNiMetadataSeIgnora(t *testing.T) {
	st := memstore.New()
	ev := &billing.PaymentEvent{Type: billing.EventPaymentSucceeded, PaymentIntentID: "pi_x"}
	require.NoError(t, newWebhook(st, ev).Handle(context.Background(), []byte("{}"), "ok"))
	assert.Empty(t, st.Payments().All())
}

func TestWebhook_MetadataIncompletaOHitoAjenoSeIgnora(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	ctx := context.Background()
	cases := []map[string]string{
		{"tenantId": tenantID, "milestoneId": "m1"},
		{"tenantId": tenantID, "projectId": "p2", "milestoneId": "m1"},
		{"tenantId": "tenant-b", "projectId": "p1", "milestoneId": "m1"},
		{"tenantId": tenantID, "projectId": "p1", "milestoneId": "no-existe"},
	}
	for i, md := range cases {
		ev := &billing.PaymentEvent{Type: billing.EventPaymentSucceeded, PaymentIntentID: fmt.Sprintf("pi_md_%d", i), AmountCents: 100, Metadata: md}
		require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"), "caso %d", i)
	}
	assert.Empty(t, st.Payments().All())
	m, err := st.Milestones().GetByID(ctx, tenantID, "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.MilestoneStatusPending, m.Status)
}

func TestWebhook_FallidoSoloActualizaExistente(t *testing.T) {
	st := memstore.New()
	seed(t, st)
	ctx := context.Background()

	// Sin registro: no crea nada.
	ev := &billing.PaymentEvent{Type: billing.EventPaymentFailed, PaymentIntentID: "pi_123",
		Metadata: map[string]string{"tenantId": tenantID, "milestoneId": "m1"}}
	require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"))
	assert.Empty(t, st.Payments().All())

	uc := billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), &fakeProvider{}, "usd", logger.Nop())
	_, err := uc.Pay(ctx, tenantID, "p1", "m1")
	require.NoError(t, err)
	require.NoError(t, newWebhook(st, ev).Handle(ctx, []byte("{}"), "ok"))

	rec, err := st.Payments().GetByExternalID(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, rec.Status)
	m, err := st.Milestones().GetByID(ctx, tenantID, "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.MilestoneStatusPending, m.Status)
}

func TestWebhook_TipoNoManejadoSeAcepta(t *testing.T) {
	st := memstore.New()
	ev := &billing.PaymentEvent{Type: "charge.refunded"}
	assert.NoError(t, newWebhook(st, ev).Handle(context.Background(), []byte("{}"), "ok"))
	assert.Zero(t, st.TxCount)
}
