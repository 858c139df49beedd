package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.SpecRepository = (*SpecRepo)(nil)

// SpecRepo persiste las asignaciones producto-espacio (project_products).
type SpecRepo struct {
	q Querier
}

// NewSpecRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSpecRepository(q Querier) *SpecRepo {
	return &SpecRepo{q: q}
}

const specColumns = `id, tenant_id, project_id, space_id, product_id, variant_id, element_key, element_label,
	quantity, unit, project_tag, tag_conflict, notes, client_status, created_at, updated_at`

func scanSpec(row pgx.Row) (*entity.ProjectProduct, error) {
	var s entity.ProjectProduct
	err := row.Scan(
		&s.ID, &s.TenantID, &s.ProjectID, &s.SpaceID, &s.ProductID, &s.VariantID, &s.ElementKey, &s.ElementLabel,
		&s.Quantity, &s.Unit, &s.ProjectTag, &s.TagConflict, &s.Notes, &s.ClientStatus, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ProjectProduct, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, queryErr("list specs", err)
	}
	defer rows.Close()
	var list []*entity.ProjectProduct
	for rows.Next() {
		s, err := scanSpec(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spec: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create persiste un spec nuevo. tag_conflict arranca en false; lo fija la detección.
func (r *SpecRepo) Create(ctx context.Context, s *entity.ProjectProduct) error {
	query := `
		INSERT INTO project_products (id, tenant_id, project_id, space_id, product_id, variant_id, element_key,
			element_label, quantity, unit, project_tag, notes, client_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.ProjectID, s.SpaceID, s.ProductID, s.VariantID, s.ElementKey,
		s.ElementLabel, s.Quantity, s.Unit, s.ProjectTag, s.Notes, s.ClientStatus, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto, espacio o producto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert spec: %w", err)
	}
	return nil
}

// Update actualiza los campos editables, incluido el producto. tag_conflict solo lo escribe SetTagConflict.
func (r *SpecRepo) Update(ctx context.Context, s *entity.ProjectProduct) error {
	query := `
		UPDATE project_products
		SET space_id = $3, product_id = $4, variant_id = $5, element_key = $6, element_label = $7,
		    quantity = $8, unit = $9, project_tag = $10, notes = $11, client_status = $12, updated_at = $13
		WHERE id = $1 AND tenant_id = $2`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.SpaceID, s.ProductID, s.VariantID, s.ElementKey, s.ElementLabel,
		s.Quantity, s.Unit, s.ProjectTag, s.Notes, s.ClientStatus, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: espacio o producto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("update spec: %w", err)
	}
	return nil
}

// Delete elimina un spec del estudio.
func (r *SpecRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM project_products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete spec: %w", err)
	}
	return nil
}

// GetByID obtiene un spec del estudio.
func (r *SpecRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ProjectProduct, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	query := `SELECT ` + specColumns + ` FROM project_products WHERE id = $1 AND tenant_id = $2`
	s, err := scanSpec(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spec: %w", err)
	}
	return s, nil
}

// ListByProject lista los specs del proyecto, opcionalmente filtrados por espacio.
func (r *SpecRepo) ListByProject(ctx context.Context, tenantID, projectID, spaceID string) ([]*entity.ProjectProduct, error) {
	if spaceID != "" {
		if !validUUID(spaceID) {
			return nil, nil
		}
		return r.list(ctx, `SELECT `+specColumns+` FROM project_products
			WHERE tenant_id = $1 AND project_id = $2 AND space_id = $3 ORDER BY created_at`,
			tenantID, projectID, spaceID)
	}
	return r.list(ctx, `SELECT `+specColumns+` FROM project_products
		WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at`,
		tenantID, projectID)
}

// ListByTag lista los specs del proyecto con el tag exacto. FOR UPDATE serializa rechequeos concurrentes.
func (r *SpecRepo) ListByTag(ctx context.Context, projectID, tag string) ([]*entity.ProjectProduct, error) {
	return r.list(ctx, `SELECT `+specColumns+` FROM project_products
		WHERE project_id = $1 AND project_tag = $2 ORDER BY created_at FOR UPDATE`,
		projectID, tag)
}

// SetTagConflict fija el flag derivado en todos los specs indicados.
func (r *SpecRepo) SetTagConflict(ctx context.Context, ids []string, conflict bool) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `UPDATE project_products SET tag_conflict = $2 WHERE id = ANY($1)`, ids, conflict)
	if err != nil {
		return fmt.Errorf("set tag conflict: %w", err)
	}
	return nil
}
