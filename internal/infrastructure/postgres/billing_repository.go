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
	_ repository.MilestoneRepository = (*MilestoneRepo)(nil)
	_ repository.PaymentRepository   = (*PaymentRepo)(nil)
)

// MilestoneRepo persiste los hitos de cobro.
type MilestoneRepo struct {
	q Querier
}

// NewMilestoneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMilestoneRepository(q Querier) *MilestoneRepo {
	return &MilestoneRepo{q: q}
}

const milestoneColumns = `id, tenant_id, project_id, name, target_date, amount, auto_charge, status, created_at, updated_at`

func scanMilestone(row pgx.Row) (*entity.ProjectMilestone, error) {
	var m entity.ProjectMilestone
	err := row.Scan(&m.ID, &m.TenantID, &m.ProjectID, &m.Name, &m.TargetDate, &m.Amount,
		&m.AutoCharge, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un hito.
func (r *MilestoneRepo) Create(ctx context.Context, m *entity.ProjectMilestone) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_milestones (`+milestoneColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.ProjectID, m.Name, m.TargetDate, m.Amount, m.AutoCharge, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

// GetByID obtiene un hito del estudio.
func (r *MilestoneRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ProjectMilestone, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	m, err := scanMilestone(r.q.QueryRow(ctx,
		`SELECT `+milestoneColumns+` FROM project_milestones WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get milestone: %w", err)
	}
	return m, nil
}

// ListByProject lista los hitos por fecha objetivo; los que no tienen fecha van al final.
func (r *MilestoneRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.ProjectMilestone, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+milestoneColumns+` FROM project_milestones
		WHERE tenant_id = $1 AND project_id = $2
		ORDER BY target_date ASC NULLS LAST, created_at`, tenantID, projectID)
	if err != nil {
		return nil, queryErr("list milestones", err)
	}
	defer rows.Close()
	var list []*entity.ProjectMilestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// MarkPaid marca el hito como pagado. Idempotente.
func (r *MilestoneRepo) MarkPaid(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE project_milestones SET status = 'paid', updated_at = $2 WHERE id = $1 AND status <> 'paid'`, id, at)
	if err != nil {
		return fmt.Errorf("mark milestone paid: %w", err)
	}
	return nil
}

// PaymentRepo persiste los intentos de pago del proveedor.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un intento de pago. external_payment_id es único.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.PaymentRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payment_records (id, tenant_id, project_id, milestone_id, external_payment_id,
			amount, currency, status, provider, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.TenantID, p.ProjectID, p.MilestoneID, p.ExternalPaymentID,
		p.Amount, p.Currency, p.Status, p.Provider, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByExternalID busca un pago por el ID del proveedor; bloquea la fila dentro de una tx.
func (r *PaymentRepo) GetByExternalID(ctx context.Context, externalPaymentID string) (*entity.PaymentRecord, error) {
	var p entity.PaymentRecord
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, project_id, milestone_id, external_payment_id, amount, currency,
			status, provider, created_at, updated_at
		FROM payment_records WHERE external_payment_id = $1 FOR UPDATE`, externalPaymentID,
	).Scan(&p.ID, &p.TenantID, &p.ProjectID, &p.MilestoneID, &p.ExternalPaymentID, &p.Amount, &p.Currency,
		&p.Status, &p.Provider, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// UpdateStatus cambia el estado de un pago.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE payment_records SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}
