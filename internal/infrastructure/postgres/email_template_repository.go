package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.EmailTemplateRepository = (*EmailTemplateRepo)(nil)

// EmailTemplateRepo persiste las plantillas de correo por estudio.
type EmailTemplateRepo struct {
	q Querier
}

// NewEmailTemplateRepository construye el adaptador.
func NewEmailTemplateRepository(q Querier) *EmailTemplateRepo {
	return &EmailTemplateRepo{q: q}
}

const emailTemplateColumns = `id, tenant_id, key, subject, body, created_at, updated_at`

func scanEmailTemplate(row pgx.Row) (*entity.EmailTemplate, error) {
	var t entity.EmailTemplate
	if err := row.Scan(&t.ID, &t.TenantID, &t.Key, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Upsert crea o reemplaza la plantilla (tenant, key) conservando id y created_at.
func (r *EmailTemplateRepo) Upsert(ctx context.Context, t *entity.EmailTemplate) (*entity.EmailTemplate, error) {
	saved, err := scanEmailTemplate(r.q.QueryRow(ctx, `
		INSERT INTO email_templates (`+emailTemplateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, key) DO UPDATE SET
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
		RETURNING `+emailTemplateColumns,
		t.ID, t.TenantID, t.Key, t.Subject, t.Body, t.CreatedAt, t.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert email template: %w", err)
	}
	return saved, nil
}

// GetByKey obtiene la plantilla del estudio por clave.
func (r *EmailTemplateRepo) GetByKey(ctx context.Context, tenantID, key string) (*entity.EmailTemplate, error) {
	t, err := scanEmailTemplate(r.q.QueryRow(ctx,
		`SELECT `+emailTemplateColumns+` FROM email_templates WHERE tenant_id = $1 AND key = $2`, tenantID, key))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email template: %w", err)
	}
	return t, nil
}

// List lista las plantillas del estudio por clave.
func (r *EmailTemplateRepo) List(ctx context.Context, tenantID string) ([]*entity.EmailTemplate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+emailTemplateColumns+` FROM email_templates WHERE tenant_id = $1 ORDER BY key`, tenantID)
	if err != nil {
		return nil, queryErr("list email templates", err)
	}
	defer rows.Close()
	var list []*entity.EmailTemplate
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email template: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
