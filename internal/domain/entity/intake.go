package entity

import "time"

// IntakeForm formulario público de captación de clientes.
type IntakeForm struct {
	ID          string
	TenantID    string
	Slug        string
	Name        string
	Description string
	CreatedAt   time.Time
}

// IntakeSubmission respuesta recibida por un formulario público.
type IntakeSubmission struct {
	ID                string
	TenantID          string
	FormID            string
	Name              string
	Email             string
	Phone             string
	EnteredAddress    string
	Responses         map[string]any
	ResolvedProjectID *string
	CreatedAt         time.Time
}
