package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// OverrideRepository persistencia de overrides de precio por estudio.
type OverrideRepository interface {
	// Upsert inserta o reemplaza el override (tenant, producto, variante) en una sola sentencia
	// y devuelve la fila resultante.
	Upsert(ctx context.Context, o *entity.TenantProductOverride) (*entity.TenantProductOverride, error)
	// ListForProducts devuelve los overrides sin variante del estudio para los productos dados.
	ListForProducts(ctx context.Context, tenantID string, productIDs []string) ([]*entity.TenantProductOverride, error)
}
