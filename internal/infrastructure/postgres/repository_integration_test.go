package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/internal/infrastructure/postgres"
	"github.com/jhoicas/atelier-api/pkg/config"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// Requieren una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/...
// Cada test usa un tenant nuevo, así que pueden correr sobre una base compartida.

func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido; se omiten los tests contra PostgreSQL")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.NewMigrator(pool).Up(ctx))
	return pool
}

func newGlobalProduct(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), Scope: entity.ProductScopeGlobal, SKU: "IT-" + uuid.NewString()[:8],
		Name: name, Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(context.Background(), p))
	return p.ID
}

// ── Overrides ─────────────────────────────────────────────────────────────────

func TestPG_UpsertOverrideUsaIndiceParcial(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	repo := postgres.NewOverrideRepository(pool)
	tenant := uuid.NewString()
	productID := newGlobalProduct(t, pool, "Sofá integración")

	first, err := repo.Upsert(ctx, &entity.TenantProductOverride{
		ID: uuid.NewString(), TenantID: tenant, ProductID: productID,
		SellPrice: decPtr("100"), Availability: entity.AvailabilityPreferred,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, &entity.TenantProductOverride{
		ID: uuid.NewString(), TenantID: tenant, ProductID: productID,
		SellPrice: decPtr("250.50"), Availability: entity.AvailabilityDefault,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "ON CONFLICT conserva la fila")
	assert.True(t, second.SellPrice.Equal(decimal.RequireFromString("250.5")))

	variant := uuid.NewString()
	withVariant, err := repo.Upsert(ctx, &entity.TenantProductOverride{
		ID: uuid.NewString(), TenantID: tenant, ProductID: productID, VariantID: &variant,
		Availability: entity.AvailabilityDefault, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, withVariant.ID)

	list, err := repo.ListForProducts(ctx, tenant, []string{productID})
	require.NoError(t, err)
	assert.Len(t, list, 1, "solo el override sin variante")
}

func TestPG_ListVisibleExcluyeOcultosAntesDePaginar(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	tenant := uuid.NewString()
	products := postgres.NewProductRepository(pool)
	overrides := postgres.NewOverrideRepository(pool)

	// Productos privados del tenant para aislar el listado del resto del catálogo.
	var ids []string
	for _, name := range []string{"A-oculto", "B-oculto", "C-visible", "D-visible"} {
		now := time.Now()
		owner := tenant
		p := &entity.Product{
			ID: uuid.NewString(), Scope: entity.ProductScopeTenant, OwnerTenantID: &owner,
			SKU: name, Name: name, Category: "it-" + tenant, Status: entity.ProductStatusActive,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, products.Create(ctx, p))
		ids = append(ids, p.ID)
	}
	for _, id := range ids[:2] {
		_, err := overrides.Upsert(ctx, &entity.TenantProductOverride{
			ID: uuid.NewString(), TenantID: tenant, ProductID: id,
			Availability: entity.AvailabilityHidden, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	list, err := products.ListVisible(ctx, tenant, repository.ProductFilter{
		Category: "it-" + tenant, ExcludeHidden: true, Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C-visible", list[0].Name)
	assert.Equal(t, "D-visible", list[1].Name)
}

// ── Specs y conflictos de tag ─────────────────────────────────────────────────

type specEnv struct {
	uc        *usecase.SpecUseCase
	specs     *postgres.SpecRepo
	tenant    string
	projectID string
	spaceID   string
	productA  string
	productB  string
}

func newSpecEnv(t *testing.T) *specEnv {
	t.Helper()
	pool := openDB(t)
	ctx := context.Background()
	env := &specEnv{
		specs:    postgres.NewSpecRepository(pool),
		tenant:   uuid.NewString(),
		productA: newGlobalProduct(t, pool, "Lámpara A"),
		productB: newGlobalProduct(t, pool, "Lámpara B"),
	}
	now := time.Now()
	project := &entity.Project{ID: uuid.NewString(), TenantID: env.tenant, Name: "Casa IT", Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProjectRepository(pool).Create(ctx, project))
	space := &entity.Space{ID: uuid.NewString(), TenantID: env.tenant, ProjectID: project.ID, Name: "Sala", CreatedAt: now}
	require.NoError(t, postgres.NewSpaceRepository(pool).Create(ctx, space))
	env.projectID, env.spaceID = project.ID, space.ID

	env.uc = usecase.NewSpecUseCase(env.specs, postgres.NewProjectRepository(pool), postgres.NewSpaceRepository(pool),
		postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), nil, logger.Nop())
	return env
}

func (e *specEnv) create(t *testing.T, productID, tag string) string {
	t.Helper()
	out, err := e.uc.Create(context.Background(), e.tenant, e.projectID, dto.CreateSpecRequest{
		SpaceID: e.spaceID, ProductID: productID, ProjectTag: &tag,
	})
	require.NoError(t, err)
	return out.ID
}

func (e *specEnv) stored(t *testing.T, id string) *entity.ProjectProduct {
	t.Helper()
	s, err := e.specs.GetByID(context.Background(), e.tenant, id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestPG_CambiarProductoSePersisteYRecalcula(t *testing.T) {
	e := newSpecEnv(t)
	s1 := e.create(t, e.productA, "F-12")
	s2 := e.create(t, e.productB, "F-12")
	require.True(t, e.stored(t, s1).TagConflict)

	out, err := e.uc.Update(context.Background(), e.tenant, e.projectID, s2, dto.UpdateSpecRequest{ProductID: &e.productA})
	require.NoError(t, err)
	assert.False(t, out.TagConflict)

	assert.Equal(t, e.productA, e.stored(t, s2).ProductID)
	assert.False(t, e.stored(t, s1).TagConflict)
	assert.False(t, e.stored(t, s2).TagConflict)
}

func TestPG_QuitarTagDesmarcaElSpec(t *testing.T) {
	e := newSpecEnv(t)
	s1 := e.create(t, e.productA, "F-12")
	s2 := e.create(t, e.productB, "F-12")

	empty := ""
	_, err := e.uc.Update(context.Background(), e.tenant, e.projectID, s2, dto.UpdateSpecRequest{ProjectTag: &empty})
	require.NoError(t, err)

	stored := e.stored(t, s2)
	assert.Nil(t, stored.ProjectTag)
	assert.False(t, stored.TagConflict)
	assert.False(t, e.stored(t, s1).TagConflict)
}

func TestPG_IDNoUUIDEsNotFound(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()

	p, err := postgres.NewProjectRepository(pool).GetByID(ctx, uuid.NewString(), "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	list, err := postgres.NewSpecRepository(pool).ListByProject(ctx, uuid.NewString(), uuid.NewString(), "no-uuid")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
