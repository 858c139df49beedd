package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

func newContractUC(st *memstore.Store) *usecase.ContractUseCase {
	return usecase.NewContractUseCase(st.Contracts(), st.ContractTemplates(), st.Projects(), st.Clients(), logger.Nop())
}

// ── Plantillas ──

func TestContract_PlantillaCompletaDatosDelProyectoYCliente(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, st.Clients().Create(ctx, &entity.Client{ID: "cli-1", TenantID: tenantA, Name: "Ana Ruiz", Email: "ana@example.com", CreatedAt: now, UpdatedAt: now}))
	clientID := "cli-1"
	require.NoError(t, st.Projects().Create(ctx, &entity.Project{
		ID: "p1", TenantID: tenantA, ClientID: &clientID, Name: "Casa Ruiz", Address: "Calle 8 #12",
		Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	uc := newContractUC(st)

	tpl, err := uc.CreateTemplate(ctx, tenantA, dto.CreateContractTemplateRequest{
		Name: "Diseño integral",
		Body: "Contrato {{contractTitle}} con {{clientName}} ({{clientEmail}}) para {{projectName}} en {{projectAddress}}: {{baseHours}} h. {{desconocido}}",
	})
	require.NoError(t, err)

	out, err := uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", TemplateID: &tpl.ID, BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Contrato Fase 1 con Ana Ruiz (ana@example.com) para Casa Ruiz en Calle 8 #12: 40 h. ", out.Body)
	assert.Equal(t, entity.ContractStatusDraft, out.Status)
	require.NotNil(t, out.TemplateID)
	assert.Equal(t, tpl.ID, *out.TemplateID)
	assert.Empty(t, out.Amendments)
}

func TestContract_PlantillaDeOtroEstudioEsInvalida(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)

	tpl, err := uc.CreateTemplate(ctx, tenantB, dto.CreateContractTemplateRequest{Name: "Ajena", Body: "x"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", TemplateID: &tpl.ID, BillingModel: entity.BillingModelFlatRate, BaseFlatAmount: decPtr("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Modelo de cobro ──

func TestContract_MontosSegunModeloDeCobro(t *testing.T) {
	st := memstore.New()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)

	cases := []struct {
		name   string
		req    dto.CreateContractRequest
		wantOK bool
	}{
		{"hourly sin horas", dto.CreateContractRequest{BillingModel: entity.BillingModelHourly}, false},
		{"hourly con horas", dto.CreateContractRequest{BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("10")}, true},
		{"flat_rate sin monto", dto.CreateContractRequest{BillingModel: entity.BillingModelFlatRate, BaseHoursAllocated: decPtr("10")}, false},
		{"hybrid completo", dto.CreateContractRequest{BillingModel: entity.BillingModelHybrid, BaseHoursAllocated: decPtr("10"), BaseFlatAmount: decPtr("500")}, true},
		{"horas negativas", dto.CreateContractRequest{BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("-1")}, false},
		{"modelo desconocido", dto.CreateContractRequest{BillingModel: "retainer"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Title = "Contrato"
			_, err := uc.Create(context.Background(), tenantA, "p1", tc.req)
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestContract_ProyectoAjenoEsNotFound(t *testing.T) {
	st := memstore.New()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)

	_, err := uc.Create(context.Background(), tenantB, "p1", dto.CreateContractRequest{
		Title: "x", BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Estados ──

func TestContract_TransicionesDeEstado(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)
	c, err := uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("10"),
	})
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractStatusSent, out.Status)

	out, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusSigned)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractStatusSigned, out.Status)

	_, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusDraft)
	assert.ErrorIs(t, err, domain.ErrConflict, "firmado no vuelve a borrador")

	out, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusSigned)
	require.NoError(t, err, "mismo estado no es transición")
	assert.Equal(t, entity.ContractStatusSigned, out.Status)

	_, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusVoid)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusSent)
	assert.ErrorIs(t, err, domain.ErrConflict, "anulado es terminal")

	_, err = uc.UpdateStatus(ctx, tenantA, c.ID, "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Enmiendas ──

func TestContract_EnmiendasSeListanConSuContrato(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)
	c, err := uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("10"),
	})
	require.NoError(t, err)

	_, err = uc.CreateAmendment(ctx, tenantA, c.ID, dto.CreateAmendmentRequest{Title: "Cocina", ExtraHoursAllocated: decPtr("5")})
	require.NoError(t, err)

	got, err := uc.Get(ctx, tenantA, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Amendments, 1)
	assert.Equal(t, "Cocina", got.Amendments[0].Title)

	list, err := uc.List(ctx, tenantA, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Amendments, 1)

	_, err = uc.Get(ctx, tenantB, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContract_EnmiendaSobreContratoAnuladoEsConflicto(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)
	c, err := uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", BillingModel: entity.BillingModelFlatRate, BaseFlatAmount: decPtr("900"),
	})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, tenantA, c.ID, entity.ContractStatusVoid)
	require.NoError(t, err)

	_, err = uc.CreateAmendment(ctx, tenantA, c.ID, dto.CreateAmendmentRequest{Title: "Extra"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestContract_EnmiendaConMontoNegativoEsInvalida(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	seedProject(t, st, tenantA, "p1")
	uc := newContractUC(st)
	c, err := uc.Create(ctx, tenantA, "p1", dto.CreateContractRequest{
		Title: "Fase 1", BillingModel: entity.BillingModelHourly, BaseHoursAllocated: decPtr("10"),
	})
	require.NoError(t, err)

	_, err = uc.CreateAmendment(ctx, tenantA, c.ID, dto.CreateAmendmentRequest{Title: "Recorte", ExtraHoursAllocated: decPtr("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
