package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoleRate tarifa por hora de un rol del estudio (ej. "Diseñador senior").
type RoleRate struct {
	ID         string
	TenantID   string
	RoleName   string
	HourlyRate decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomTemplate elemento sugerido para un tipo de espacio. RoomType vacío aplica a todos.
type RoomTemplate struct {
	ID        string
	TenantID  string
	RoomType  string
	Key       string
	Label     string
	CreatedAt time.Time
}

// VendorRep contacto comercial del estudio en un proveedor.
type VendorRep struct {
	ID         string
	TenantID   string
	VendorName string
	RepName    string
	RepEmail   string
	RepPhone   string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
