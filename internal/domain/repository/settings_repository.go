package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// RoleRateRepository tarifas por rol. Único por (tenant, role_name).
type RoleRateRepository interface {
	Upsert(ctx context.Context, r *entity.RoleRate) (*entity.RoleRate, error)
	Delete(ctx context.Context, tenantID, id string) (bool, error)
	List(ctx context.Context, tenantID string) ([]*entity.RoleRate, error)
}

// RoomTemplateRepository elementos sugeridos por tipo de espacio.
type RoomTemplateRepository interface {
	Create(ctx context.Context, t *entity.RoomTemplate) error
	Delete(ctx context.Context, tenantID, id string) (bool, error)
	// List con roomType no vacío devuelve ese tipo más los genéricos.
	List(ctx context.Context, tenantID, roomType string) ([]*entity.RoomTemplate, error)
}

// VendorRepRepository contactos de proveedores del estudio.
type VendorRepRepository interface {
	Create(ctx context.Context, r *entity.VendorRep) error
	Update(ctx context.Context, r *entity.VendorRep) error
	Delete(ctx context.Context, tenantID, id string) (bool, error)
	GetByID(ctx context.Context, tenantID, id string) (*entity.VendorRep, error)
	// List filtra por proveedor (sin distinguir mayúsculas) si vendor no está vacío.
	List(ctx context.Context, tenantID, vendor string) ([]*entity.VendorRep, error)
}
