package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo persiste horas trabajadas.
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador.
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

const timeEntryColumns = `id, tenant_id, project_id, contract_id, amendment_id, user_id, role_name, date, hours, description, created_at`

func scanTimeEntry(row pgx.Row) (*entity.TimeEntry, error) {
	var e entity.TimeEntry
	err := row.Scan(&e.ID, &e.TenantID, &e.ProjectID, &e.ContractID, &e.AmendmentID, &e.UserID,
		&e.RoleName, &e.Date, &e.Hours, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un registro de horas.
func (r *TimeEntryRepo) Create(ctx context.Context, e *entity.TimeEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO time_entries (`+timeEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.TenantID, e.ProjectID, e.ContractID, e.AmendmentID, e.UserID,
		e.RoleName, e.Date, e.Hours, e.Description, e.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto, contrato o enmienda inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// Delete elimina un registro del estudio.
func (r *TimeEntryRepo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND tenant_id = $2`, id, tenantID); err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	return nil
}

// GetByID obtiene un registro del estudio.
func (r *TimeEntryRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.TimeEntry, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	e, err := scanTimeEntry(r.q.QueryRow(ctx, `SELECT `+timeEntryColumns+`
		FROM time_entries WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return e, nil
}

// ListByProject lista las horas del proyecto, las más recientes primero.
func (r *TimeEntryRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.TimeEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT `+timeEntryColumns+`
		FROM time_entries WHERE tenant_id = $1 AND project_id = $2 ORDER BY date DESC, created_at DESC`,
		tenantID, projectID)
	if err != nil {
		return nil, queryErr("list time entries", err)
	}
	defer rows.Close()
	var list []*entity.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
