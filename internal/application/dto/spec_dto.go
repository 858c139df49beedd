package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSpecRequest alta de un spec en un espacio del proyecto.
type CreateSpecRequest struct {
	SpaceID      string           `json:"spaceId" validate:"required"`
	ProductID    string           `json:"productId" validate:"required"`
	ElementKey   string           `json:"elementKey" validate:"max=100"`
	ElementLabel string           `json:"elementLabel" validate:"max=200"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         string           `json:"unit" validate:"max=20"`
	ProjectTag   *string          `json:"projectTag" validate:"omitempty,max=50"`
	Notes        string           `json:"notes"`
}

// UpdateSpecRequest actualización parcial de un spec (nil = sin cambio).
// ProjectTag "" limpia el tag.
type UpdateSpecRequest struct {
	SpaceID      *string          `json:"spaceId"`
	ProductID    *string          `json:"productId"`
	ElementKey   *string          `json:"elementKey" validate:"omitempty,max=100"`
	ElementLabel *string          `json:"elementLabel" validate:"omitempty,max=200"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	ProjectTag   *string          `json:"projectTag" validate:"omitempty,max=50"`
	Notes        *string          `json:"notes"`
	ClientStatus *string          `json:"clientStatus" validate:"omitempty,oneof=proposed approved rejected"`
}

// SpecResponse spec en respuestas HTTP.
type SpecResponse struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"projectId"`
	SpaceID      string          `json:"spaceId"`
	ProductID    string          `json:"productId"`
	ElementKey   string          `json:"elementKey"`
	ElementLabel string          `json:"elementLabel"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ProjectTag   *string         `json:"projectTag"`
	TagConflict  bool            `json:"tagConflict"`
	Notes        string          `json:"notes"`
	ClientStatus string          `json:"clientStatus"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ScheduleLine fila del PDF de cronograma de specs.
type ScheduleLine struct {
	Tag         string
	Item        string
	Space       string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   *decimal.Decimal
	TagConflict bool
}

// ScheduleDocument datos para generar el PDF de specs de un proyecto.
type ScheduleDocument struct {
	ProjectName string
	Address     string
	GeneratedAt time.Time
	Lines       []ScheduleLine
}
