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
	_ repository.ContractTemplateRepository = (*ContractTemplateRepo)(nil)
	_ repository.ContractRepository         = (*ContractRepo)(nil)
)

// ContractTemplateRepo persiste plantillas de contrato.
type ContractTemplateRepo struct {
	q Querier
}

// NewContractTemplateRepository construye el adaptador.
func NewContractTemplateRepository(q Querier) *ContractTemplateRepo {
	return &ContractTemplateRepo{q: q}
}

const contractTemplateColumns = `id, tenant_id, name, type, body, created_at, updated_at`

func scanContractTemplate(row pgx.Row) (*entity.ContractTemplate, error) {
	var t entity.ContractTemplate
	if err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.Type, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una plantilla.
func (r *ContractTemplateRepo) Create(ctx context.Context, t *entity.ContractTemplate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contract_templates (`+contractTemplateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.TenantID, t.Name, t.Type, t.Body, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract template: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla del estudio.
func (r *ContractTemplateRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ContractTemplate, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	t, err := scanContractTemplate(r.q.QueryRow(ctx, `SELECT `+contractTemplateColumns+`
		FROM contract_templates WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract template: %w", err)
	}
	return t, nil
}

// List lista las plantillas del estudio, las más nuevas primero.
func (r *ContractTemplateRepo) List(ctx context.Context, tenantID string) ([]*entity.ContractTemplate, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contractTemplateColumns+`
		FROM contract_templates WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, queryErr("list contract templates", err)
	}
	defer rows.Close()
	var list []*entity.ContractTemplate
	for rows.Next() {
		t, err := scanContractTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract template: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ContractRepo persiste contratos y enmiendas.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, tenant_id, project_id, template_id, title, body, billing_model,
	base_hours_allocated, base_flat_amount, status, created_at, updated_at`

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(&c.ID, &c.TenantID, &c.ProjectID, &c.TemplateID, &c.Title, &c.Body, &c.BillingModel,
		&c.BaseHoursAllocated, &c.BaseFlatAmount, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contracts (`+contractColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.TenantID, c.ProjectID, c.TemplateID, c.Title, c.Body, c.BillingModel,
		c.BaseHoursAllocated, c.BaseFlatAmount, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto o plantilla inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato del estudio.
func (r *ContractRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Contract, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	c, err := scanContract(r.q.QueryRow(ctx, `SELECT `+contractColumns+`
		FROM contracts WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// ListByProject lista los contratos del proyecto, los más nuevos primero.
func (r *ContractRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Contract, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contractColumns+`
		FROM contracts WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at DESC`, tenantID, projectID)
	if err != nil {
		return nil, queryErr("list contracts", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del contrato.
func (r *ContractRepo) UpdateStatus(ctx context.Context, tenantID, id, status string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE contracts SET status = $3, updated_at = $4 WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, status, at)
	if err != nil {
		return fmt.Errorf("update contract status: %w", err)
	}
	return nil
}

const amendmentColumns = `id, tenant_id, contract_id, title, description, extra_hours_allocated,
	extra_flat_amount, status, created_at`

func scanAmendment(row pgx.Row) (*entity.Amendment, error) {
	var a entity.Amendment
	err := row.Scan(&a.ID, &a.TenantID, &a.ContractID, &a.Title, &a.Description, &a.ExtraHoursAllocated,
		&a.ExtraFlatAmount, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAmendment persiste una enmienda.
func (r *ContractRepo) CreateAmendment(ctx context.Context, a *entity.Amendment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contract_amendments (`+amendmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.TenantID, a.ContractID, a.Title, a.Description, a.ExtraHoursAllocated,
		a.ExtraFlatAmount, a.Status, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: contrato inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert amendment: %w", err)
	}
	return nil
}

// GetAmendment obtiene una enmienda del estudio.
func (r *ContractRepo) GetAmendment(ctx context.Context, tenantID, id string) (*entity.Amendment, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	a, err := scanAmendment(r.q.QueryRow(ctx, `SELECT `+amendmentColumns+`
		FROM contract_amendments WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get amendment: %w", err)
	}
	return a, nil
}

// ListAmendments devuelve las enmiendas de los contratos dados.
func (r *ContractRepo) ListAmendments(ctx context.Context, tenantID string, contractIDs []string) ([]*entity.Amendment, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+amendmentColumns+`
		FROM contract_amendments WHERE tenant_id = $1 AND contract_id = ANY($2) ORDER BY created_at`,
		tenantID, contractIDs)
	if err != nil {
		return nil, queryErr("list amendments", err)
	}
	defer rows.Close()
	var list []*entity.Amendment
	for rows.Next() {
		a, err := scanAmendment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan amendment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
