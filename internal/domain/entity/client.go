package entity

import "time"

// Client representa un cliente del estudio.
type Client struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
