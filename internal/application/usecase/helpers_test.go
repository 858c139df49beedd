package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

type countingMetrics struct {
	upserts    int
	duplicates int
	conflicts  int
	clean      int
}

func (m *countingMetrics) OverrideUpserted()        { m.upserts++ }
func (m *countingMetrics) OverrideDuplicates(n int) { m.duplicates += n }
func (m *countingMetrics) TagConflictChecked(c bool) {
	if c {
		m.conflicts++
	} else {
		m.clean++
	}
}
func (m *countingMetrics) PaymentWebhook(string) {}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func seedGlobalProduct(t *testing.T, st *memstore.Store, id, name string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: id, Scope: entity.ProductScopeGlobal, Name: name, SKU: "SKU-" + id,
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Products().Create(context.Background(), p))
	return p
}

func seedTenantProduct(t *testing.T, st *memstore.Store, id, owner string) *entity.Product {
	t.Helper()
	o := owner
	p := &entity.Product{
		ID: id, Scope: entity.ProductScopeTenant, OwnerTenantID: &o, Name: "Privado " + id,
		Status: entity.ProductStatusActive,
	}
	require.NoError(t, st.Products().Create(context.Background(), p))
	return p
}

// seedProject crea un proyecto del tenant con un espacio y devuelve (projectID, spaceID).
func seedProject(t *testing.T, st *memstore.Store, tenantID, projectID string) (string, string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.Projects().Create(ctx, &entity.Project{
		ID: projectID, TenantID: tenantID, Name: "Casa " + projectID, Status: entity.ProjectStatusActive,
	}))
	spaceID := projectID + "-sala"
	require.NoError(t, st.Spaces().Create(ctx, &entity.Space{
		ID: spaceID, TenantID: tenantID, ProjectID: projectID, Name: "Sala",
	}))
	return projectID, spaceID
}
