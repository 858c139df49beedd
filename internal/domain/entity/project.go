package entity

import "time"

// Estados de un proyecto.
const (
	ProjectStatusProspect  = "prospect"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)

// ValidProjectStatus indica si s es un estado de proyecto aceptado.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusProspect, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project representa un proyecto de diseño de un cliente del estudio.
type Project struct {
	ID                 string
	TenantID           string
	ClientID           *string
	Name               string
	Status             string
	Address            string
	Lat                *float64
	Lng                *float64
	AssignedLocationID *string // sede más cercana al domicilio del proyecto
	Description        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Space es un ambiente (sala, cocina, baño…) dentro de un proyecto.
type Space struct {
	ID        string
	TenantID  string
	ProjectID string
	Name      string
	SortOrder int
	CreatedAt time.Time
}
