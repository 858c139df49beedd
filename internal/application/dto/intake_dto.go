package dto

import "time"

// CreateIntakeFormRequest alta de formulario público. El slug forma la URL pública.
type CreateIntakeFormRequest struct {
	Slug        string `json:"slug" validate:"required,min=3,max=80"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
}

// IntakeFormResponse formulario en respuestas HTTP.
type IntakeFormResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicIntakeFormResponse datos públicos del formulario.
type PublicIntakeFormResponse struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubmitIntakeRequest respuesta pública. lat/lng opcionales asignan la sede más cercana.
type SubmitIntakeRequest struct {
	Name      string         `json:"name" validate:"required,max=200"`
	Email     string         `json:"email" validate:"required,email"`
	Phone     string         `json:"phone" validate:"max=50"`
	Address   string         `json:"address"`
	Lat       *float64       `json:"lat" validate:"omitempty,latitude"`
	Lng       *float64       `json:"lng" validate:"omitempty,longitude"`
	Responses map[string]any `json:"responses"`
}

// SubmitIntakeResponse resultado del envío. Sin ProjectID, Warning explica por qué.
type SubmitIntakeResponse struct {
	SubmissionID string  `json:"submissionId"`
	ProjectID    *string `json:"projectId,omitempty"`
	Warning      string  `json:"warning,omitempty"`
}

// IntakeSubmissionResponse respuesta recibida, para el estudio.
type IntakeSubmissionResponse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	EnteredAddress    string         `json:"enteredAddress"`
	Responses         map[string]any `json:"responses"`
	ResolvedProjectID *string        `json:"resolvedProjectId"`
	CreatedAt         time.Time      `json:"createdAt"`
}
