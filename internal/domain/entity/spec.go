package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de aprobación del cliente para un spec.
const (
	ClientStatusProposed = "proposed"
	ClientStatusApproved = "approved"
	ClientStatusRejected = "rejected"
)

// ProjectProduct ("spec") asigna un producto del catálogo a un espacio de un proyecto.
// TagConflict es derivado: solo lo escribe la detección de conflictos de tag.
type ProjectProduct struct {
	ID           string
	TenantID     string
	ProjectID    string
	SpaceID      string
	ProductID    string
	VariantID    *string
	ElementKey   string
	ElementLabel string
	Quantity     decimal.Decimal
	Unit         string
	ProjectTag   *string
	TagConflict  bool
	Notes        string
	ClientStatus string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Tag devuelve el tag del spec o "" si no tiene.
func (s *ProjectProduct) Tag() string {
	if s.ProjectTag == nil {
		return ""
	}
	return *s.ProjectTag
}
