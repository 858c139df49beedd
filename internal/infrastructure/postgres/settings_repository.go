package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var (
	_ repository.RoleRateRepository     = (*RoleRateRepo)(nil)
	_ repository.RoomTemplateRepository = (*RoomTemplateRepo)(nil)
	_ repository.VendorRepRepository    = (*VendorRepRepo)(nil)
)

// deleteByTenant borra una fila del estudio e indica si existía.
func deleteByTenant(ctx context.Context, q Querier, table, tenantID, id string) (bool, error) {
	if !validUUID(tenantID, id) {
		return false, nil
	}
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ── Tarifas por rol ───────────────────────────────────────────────────────────

// RoleRateRepo persiste tarifas por rol.
type RoleRateRepo struct {
	q Querier
}

// NewRoleRateRepository construye el adaptador.
func NewRoleRateRepository(q Querier) *RoleRateRepo {
	return &RoleRateRepo{q: q}
}

const roleRateColumns = `id, tenant_id, role_name, hourly_rate, created_at, updated_at`

func scanRoleRate(row pgx.Row) (*entity.RoleRate, error) {
	var r entity.RoleRate
	if err := row.Scan(&r.ID, &r.TenantID, &r.RoleName, &r.HourlyRate, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Upsert crea la tarifa del rol o actualiza la existente; id y created_at se conservan.
func (r *RoleRateRepo) Upsert(ctx context.Context, rate *entity.RoleRate) (*entity.RoleRate, error) {
	saved, err := scanRoleRate(r.q.QueryRow(ctx, `
		INSERT INTO role_rates (`+roleRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, role_name) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			updated_at = EXCLUDED.updated_at
		RETURNING `+roleRateColumns,
		rate.ID, rate.TenantID, rate.RoleName, rate.HourlyRate, rate.CreatedAt, rate.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert role rate: %w", err)
	}
	return saved, nil
}

// Delete elimina una tarifa.
func (r *RoleRateRepo) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	return deleteByTenant(ctx, r.q, "role_rates", tenantID, id)
}

// List lista las tarifas por nombre de rol.
func (r *RoleRateRepo) List(ctx context.Context, tenantID string) ([]*entity.RoleRate, error) {
	rows, err := r.q.Query(ctx, `SELECT `+roleRateColumns+` FROM role_rates WHERE tenant_id = $1 ORDER BY role_name`, tenantID)
	if err != nil {
		return nil, queryErr("list role rates", err)
	}
	defer rows.Close()
	var list []*entity.RoleRate
	for rows.Next() {
		rate, err := scanRoleRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role rate: %w", err)
		}
		list = append(list, rate)
	}
	return list, rows.Err()
}

// ── Plantillas de espacio ─────────────────────────────────────────────────────

// RoomTemplateRepo persiste elementos sugeridos por tipo de espacio.
type RoomTemplateRepo struct {
	q Querier
}

// NewRoomTemplateRepository construye el adaptador.
func NewRoomTemplateRepository(q Querier) *RoomTemplateRepo {
	return &RoomTemplateRepo{q: q}
}

// Create persiste un elemento; (tipo, key) repetido es ErrDuplicate.
func (r *RoomTemplateRepo) Create(ctx context.Context, t *entity.RoomTemplate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO room_templates (id, tenant_id, room_type, key, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.TenantID, t.RoomType, t.Key, t.Label, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: elemento %q ya existe para el tipo de espacio", domain.ErrDuplicate, t.Key)
		}
		return fmt.Errorf("insert room template: %w", err)
	}
	return nil
}

// Delete elimina un elemento.
func (r *RoomTemplateRepo) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	return deleteByTenant(ctx, r.q, "room_templates", tenantID, id)
}

// List lista por tipo y key; con roomType incluye los genéricos.
func (r *RoomTemplateRepo) List(ctx context.Context, tenantID, roomType string) ([]*entity.RoomTemplate, error) {
	query := `SELECT id, tenant_id, room_type, key, label, created_at FROM room_templates WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if roomType != "" {
		query += ` AND room_type IN ('', $2)`
		args = append(args, roomType)
	}
	query += ` ORDER BY room_type, key`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, queryErr("list room templates", err)
	}
	defer rows.Close()
	var list []*entity.RoomTemplate
	for rows.Next() {
		var t entity.RoomTemplate
		if err := rows.Scan(&t.ID, &t.TenantID, &t.RoomType, &t.Key, &t.Label, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ── Contactos de proveedores ──────────────────────────────────────────────────

// VendorRepRepo persiste contactos de proveedores.
type VendorRepRepo struct {
	q Querier
}

// NewVendorRepRepository construye el adaptador.
func NewVendorRepRepository(q Querier) *VendorRepRepo {
	return &VendorRepRepo{q: q}
}

const vendorRepColumns = `id, tenant_id, vendor_name, rep_name, rep_email, rep_phone, notes, created_at, updated_at`

func scanVendorRep(row pgx.Row) (*entity.VendorRep, error) {
	var v entity.VendorRep
	err := row.Scan(&v.ID, &v.TenantID, &v.VendorName, &v.RepName, &v.RepEmail, &v.RepPhone, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un contacto.
func (r *VendorRepRepo) Create(ctx context.Context, v *entity.VendorRep) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendor_reps (`+vendorRepColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.TenantID, v.VendorName, v.RepName, v.RepEmail, v.RepPhone, v.Notes, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor rep: %w", err)
	}
	return nil
}

// Update actualiza los datos del contacto.
func (r *VendorRepRepo) Update(ctx context.Context, v *entity.VendorRep) error {
	_, err := r.q.Exec(ctx, `
		UPDATE vendor_reps SET vendor_name = $3, rep_name = $4, rep_email = $5, rep_phone = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND tenant_id = $2`,
		v.ID, v.TenantID, v.VendorName, v.RepName, v.RepEmail, v.RepPhone, v.Notes, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor rep: %w", err)
	}
	return nil
}

// Delete elimina un contacto.
func (r *VendorRepRepo) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	return deleteByTenant(ctx, r.q, "vendor_reps", tenantID, id)
}

// GetByID obtiene un contacto del estudio.
func (r *VendorRepRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.VendorRep, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	v, err := scanVendorRep(r.q.QueryRow(ctx, `SELECT `+vendorRepColumns+`
		FROM vendor_reps WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor rep: %w", err)
	}
	return v, nil
}

// List lista contactos por proveedor y nombre.
func (r *VendorRepRepo) List(ctx context.Context, tenantID, vendor string) ([]*entity.VendorRep, error) {
	query := `SELECT ` + vendorRepColumns + ` FROM vendor_reps WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if vendor != "" {
		query += ` AND lower(vendor_name) = lower($2)`
		args = append(args, vendor)
	}
	query += ` ORDER BY lower(vendor_name), rep_name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, queryErr("list vendor reps", err)
	}
	defer rows.Close()
	var list []*entity.VendorRep
	for rows.Next() {
		v, err := scanVendorRep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor rep: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
