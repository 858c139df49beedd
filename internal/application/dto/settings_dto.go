package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertRoleRateRequest alta o cambio de tarifa por rol.
type UpsertRoleRateRequest struct {
	RoleName   string          `json:"roleName" validate:"required,max=100"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

// RoleRateResponse tarifa en respuestas HTTP.
type RoleRateResponse struct {
	ID         string          `json:"id"`
	RoleName   string          `json:"roleName"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CreateRoomTemplateRequest alta de elemento sugerido. RoomType vacío aplica a todos los espacios.
type CreateRoomTemplateRequest struct {
	RoomType string `json:"roomType" validate:"max=100"`
	Key      string `json:"key" validate:"required,max=100"`
	Label    string `json:"label" validate:"required,max=200"`
}

// RoomTemplateResponse elemento sugerido en respuestas HTTP.
type RoomTemplateResponse struct {
	ID       string `json:"id"`
	RoomType string `json:"roomType"`
	Key      string `json:"key"`
	Label    string `json:"label"`
}

// VendorRepRequest alta o edición de contacto de proveedor.
type VendorRepRequest struct {
	VendorName string `json:"vendorName" validate:"required,max=200"`
	RepName    string `json:"repName" validate:"required,max=200"`
	RepEmail   string `json:"repEmail" validate:"omitempty,email"`
	RepPhone   string `json:"repPhone" validate:"max=50"`
	Notes      string `json:"notes"`
}

// VendorRepResponse contacto en respuestas HTTP.
type VendorRepResponse struct {
	ID         string    `json:"id"`
	VendorName string    `json:"vendorName"`
	RepName    string    `json:"repName"`
	RepEmail   string    `json:"repEmail"`
	RepPhone   string    `json:"repPhone"`
	Notes      string    `json:"notes"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
