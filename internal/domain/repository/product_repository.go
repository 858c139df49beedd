package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo.
type ProductFilter struct {
	Search        string // coincide con nombre, SKU o proveedor (ILIKE)
	Category      string
	// ExcludeHidden omite los productos cuyo override vigente del estudio es hidden.
	ExcludeHidden bool
	Limit         int
	Offset        int
}

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ListVisible lista productos activos globales más los privados del estudio.
	ListVisible(ctx context.Context, tenantID string, f ProductFilter) ([]*entity.Product, error)
}
