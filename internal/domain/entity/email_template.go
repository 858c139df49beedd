package entity

import "time"

// EmailTemplate es una plantilla de correo del estudio. Body en markdown con marcadores {{clave}}.
type EmailTemplate struct {
	ID        string
	TenantID  string
	Key       string
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
