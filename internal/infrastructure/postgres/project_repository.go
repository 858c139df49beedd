package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository = (*ProjectRepo)(nil)
	_ repository.SpaceRepository   = (*SpaceRepo)(nil)
)

// ProjectRepo implementación de ProjectRepository.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, tenant_id, client_id, name, status, address, lat, lng, assigned_location_id, description, created_at, updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.TenantID, &p.ClientID, &p.Name, &p.Status, &p.Address, &p.Lat, &p.Lng,
		&p.AssignedLocationID, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.ClientID, p.Name, p.Status, p.Address, p.Lat, p.Lng,
		p.AssignedLocationID, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o sede inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto del estudio.
func (r *ProjectRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Project, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND tenant_id = $2`
	p, err := scanProject(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List lista proyectos del estudio, más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, queryErr("list projects", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del proyecto.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, tenantID, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE projects SET status = $3, updated_at = $4 WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, status, at)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SpaceRepo implementación de SpaceRepository.
type SpaceRepo struct {
	q Querier
}

// NewSpaceRepository construye el adaptador.
func NewSpaceRepository(q Querier) *SpaceRepo {
	return &SpaceRepo{q: q}
}

// Create persiste un espacio.
func (r *SpaceRepo) Create(ctx context.Context, s *entity.Space) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO spaces (id, tenant_id, project_id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.TenantID, s.ProjectID, s.Name, s.SortOrder, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert space: %w", err)
	}
	return nil
}

// GetByID obtiene un espacio del estudio.
func (r *SpaceRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Space, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	var s entity.Space
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, project_id, name, sort_order, created_at
		FROM spaces WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&s.ID, &s.TenantID, &s.ProjectID, &s.Name, &s.SortOrder, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get space: %w", err)
	}
	return &s, nil
}

// ListByProject lista los espacios del proyecto en su orden de presentación.
func (r *SpaceRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Space, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, project_id, name, sort_order, created_at
		FROM spaces WHERE tenant_id = $1 AND project_id = $2 ORDER BY sort_order, created_at`,
		tenantID, projectID)
	if err != nil {
		return nil, queryErr("list spaces", err)
	}
	defer rows.Close()
	var list []*entity.Space
	for rows.Next() {
		var s entity.Space
		if err := rows.Scan(&s.ID, &s.TenantID, &s.ProjectID, &s.Name, &s.SortOrder, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
