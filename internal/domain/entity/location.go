package entity

import "time"

// TenantLocation es una sede física del estudio.
type TenantLocation struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	Lat       float64
	Lng       float64
	CreatedAt time.Time
}
