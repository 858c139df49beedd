package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.IntakeRepository = (*IntakeRepo)(nil)

// IntakeRepo persiste formularios públicos y sus respuestas. responses se guarda como JSONB.
type IntakeRepo struct {
	q Querier
}

// NewIntakeRepository construye el adaptador.
func NewIntakeRepository(q Querier) *IntakeRepo {
	return &IntakeRepo{q: q}
}

const intakeFormColumns = `id, tenant_id, slug, name, description, created_at`

func scanIntakeForm(row pgx.Row) (*entity.IntakeForm, error) {
	var f entity.IntakeForm
	if err := row.Scan(&f.ID, &f.TenantID, &f.Slug, &f.Name, &f.Description, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateForm persiste un formulario; slug repetido es ErrDuplicate.
func (r *IntakeRepo) CreateForm(ctx context.Context, f *entity.IntakeForm) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO intake_forms (`+intakeFormColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.TenantID, f.Slug, f.Name, f.Description, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug %q en uso", domain.ErrDuplicate, f.Slug)
		}
		return fmt.Errorf("insert intake form: %w", err)
	}
	return nil
}

func (r *IntakeRepo) getForm(ctx context.Context, where string, args ...any) (*entity.IntakeForm, error) {
	f, err := scanIntakeForm(r.q.QueryRow(ctx, `SELECT `+intakeFormColumns+` FROM intake_forms WHERE `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intake form: %w", err)
	}
	return f, nil
}

// GetFormBySlug busca el formulario público por slug.
func (r *IntakeRepo) GetFormBySlug(ctx context.Context, slug string) (*entity.IntakeForm, error) {
	return r.getForm(ctx, `slug = $1`, slug)
}

// GetForm obtiene un formulario del estudio.
func (r *IntakeRepo) GetForm(ctx context.Context, tenantID, id string) (*entity.IntakeForm, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	return r.getForm(ctx, `id = $1 AND tenant_id = $2`, id, tenantID)
}

// ListForms lista los formularios del estudio por nombre.
func (r *IntakeRepo) ListForms(ctx context.Context, tenantID string) ([]*entity.IntakeForm, error) {
	rows, err := r.q.Query(ctx, `SELECT `+intakeFormColumns+` FROM intake_forms WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, queryErr("list intake forms", err)
	}
	defer rows.Close()
	var list []*entity.IntakeForm
	for rows.Next() {
		f, err := scanIntakeForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan intake form: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// CreateSubmission persiste una respuesta.
func (r *IntakeRepo) CreateSubmission(ctx context.Context, s *entity.IntakeSubmission) error {
	responses := s.Responses
	if responses == nil {
		responses = map[string]any{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO intake_submissions (id, tenant_id, form_id, name, email, phone, entered_address,
			responses, resolved_project_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.TenantID, s.FormID, s.Name, s.Email, s.Phone, s.EnteredAddress,
		responses, s.ResolvedProjectID, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: formulario inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert intake submission: %w", err)
	}
	return nil
}

// ResolveSubmission enlaza la respuesta con el proyecto creado a partir de ella.
func (r *IntakeRepo) ResolveSubmission(ctx context.Context, id, projectID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE intake_submissions SET resolved_project_id = $2 WHERE id = $1`, id, projectID); err != nil {
		return fmt.Errorf("resolve intake submission: %w", err)
	}
	return nil
}

// ListSubmissions lista las respuestas del formulario, las más nuevas primero.
func (r *IntakeRepo) ListSubmissions(ctx context.Context, tenantID, formID string) ([]*entity.IntakeSubmission, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, form_id, name, email, phone, entered_address, responses, resolved_project_id, created_at
		FROM intake_submissions WHERE tenant_id = $1 AND form_id = $2 ORDER BY created_at DESC`, tenantID, formID)
	if err != nil {
		return nil, queryErr("list intake submissions", err)
	}
	defer rows.Close()
	var list []*entity.IntakeSubmission
	for rows.Next() {
		var s entity.IntakeSubmission
		if err := rows.Scan(&s.ID, &s.TenantID, &s.FormID, &s.Name, &s.Email, &s.Phone, &s.EnteredAddress,
			&s.Responses, &s.ResolvedProjectID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan intake submission: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
