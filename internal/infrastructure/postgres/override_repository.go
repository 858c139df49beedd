package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// OverrideRepo persiste los overrides de catálogo por estudio.
type OverrideRepo struct {
	q Querier
}

// NewOverrideRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOverrideRepository(q Querier) *OverrideRepo {
	return &OverrideRepo{q: q}
}

const overrideColumns = `id, tenant_id, product_id, variant_id, cost_price, sell_price, markup_percent, availability, internal_notes, created_at, updated_at`

func scanOverride(row pgx.Row) (*entity.TenantProductOverride, error) {
	var o entity.TenantProductOverride
	err := row.Scan(
		&o.ID, &o.TenantID, &o.ProductID, &o.VariantID, &o.CostPrice, &o.SellPrice,
		&o.MarkupPercent, &o.Availability, &o.InternalNotes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Upsert inserta o reemplaza el override de (estudio, producto[, variante]) en una sola sentencia.
// El ON CONFLICT apunta al índice único parcial correspondiente; id y created_at se conservan.
func (r *OverrideRepo) Upsert(ctx context.Context, o *entity.TenantProductOverride) (*entity.TenantProductOverride, error) {
	conflictTarget := `(tenant_id, product_id) WHERE variant_id IS NULL`
	if o.VariantID != nil {
		conflictTarget = `(tenant_id, product_id, variant_id) WHERE variant_id IS NOT NULL`
	}
	query := `
		INSERT INTO tenant_product_overrides (` + overrideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ` + conflictTarget + ` DO UPDATE SET
			cost_price = EXCLUDED.cost_price,
			sell_price = EXCLUDED.sell_price,
			markup_percent = EXCLUDED.markup_percent,
			availability = EXCLUDED.availability,
			internal_notes = EXCLUDED.internal_notes,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + overrideColumns
	saved, err := scanOverride(r.q.QueryRow(ctx, query,
		o.ID, o.TenantID, o.ProductID, o.VariantID, o.CostPrice, o.SellPrice,
		o.MarkupPercent, o.Availability, o.InternalNotes, o.CreatedAt, o.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: producto inexistente", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("upsert override: %w", err)
	}
	return saved, nil
}

// ListForProducts devuelve los overrides a nivel producto (sin variante) del estudio para los IDs dados.
// Puede devolver más de uno por producto en datos heredados; la resolución decide.
func (r *OverrideRepo) ListForProducts(ctx context.Context, tenantID string, productIDs []string) ([]*entity.TenantProductOverride, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + overrideColumns + `
		FROM tenant_product_overrides
		WHERE tenant_id = $1 AND variant_id IS NULL AND product_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, tenantID, productIDs)
	if err != nil {
		return nil, queryErr("list overrides", err)
	}
	defer rows.Close()
	var list []*entity.TenantProductOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
