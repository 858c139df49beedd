package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo persiste las sedes del estudio.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una sede.
func (r *LocationRepo) Create(ctx context.Context, l *entity.TenantLocation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tenant_locations (id, tenant_id, name, address, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.TenantID, l.Name, l.Address, l.Lat, l.Lng, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// List devuelve todas las sedes del estudio en orden de alta.
func (r *LocationRepo) List(ctx context.Context, tenantID string) ([]*entity.TenantLocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, name, address, lat, lng, created_at
		FROM tenant_locations WHERE tenant_id = $1 ORDER BY created_at, id`, tenantID)
	if err != nil {
		return nil, queryErr("list locations", err)
	}
	defer rows.Close()
	var list []*entity.TenantLocation
	for rows.Next() {
		var l entity.TenantLocation
		if err := rows.Scan(&l.ID, &l.TenantID, &l.Name, &l.Address, &l.Lat, &l.Lng, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
