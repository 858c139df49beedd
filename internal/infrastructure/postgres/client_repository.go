package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del estudio.
func (r *ClientRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Client, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	query := `
		SELECT id, tenant_id, name, email, phone, address, created_at, updated_at
		FROM clients WHERE id = $1 AND tenant_id = $2`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id, tenantID).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// FindByEmail busca un cliente del estudio por email sin distinguir mayúsculas.
func (r *ClientRepo) FindByEmail(ctx context.Context, tenantID, email string) (*entity.Client, error) {
	if !validUUID(tenantID) {
		return nil, nil
	}
	query := `
		SELECT id, tenant_id, name, email, phone, address, created_at, updated_at
		FROM clients WHERE tenant_id = $1 AND lower(email) = lower($2)
		ORDER BY created_at LIMIT 1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, tenantID, email).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client by email: %w", err)
	}
	return &c, nil
}

// List lista clientes del estudio con paginación.
func (r *ClientRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, address, created_at, updated_at
		FROM clients WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, queryErr("list clients", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
