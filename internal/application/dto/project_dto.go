package dto

import "time"

// CreateProjectRequest alta de proyecto. Con lat/lng se asigna la sede más cercana.
type CreateProjectRequest struct {
	ClientID    *string  `json:"clientId"`
	Name        string   `json:"name" validate:"required,max=200"`
	Status      string   `json:"status" validate:"omitempty,oneof=prospect active on_hold completed"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude"`
	Description string   `json:"description"`
}

// UpdateProjectStatusRequest cambio de estado.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=prospect active on_hold completed"`
}

// ProjectResponse proyecto en respuestas HTTP.
type ProjectResponse struct {
	ID                 string    `json:"id"`
	ClientID           *string   `json:"clientId"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	Address            string    `json:"address"`
	Lat                *float64  `json:"lat"`
	Lng                *float64  `json:"lng"`
	AssignedLocationID *string   `json:"assignedLocationId"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateSpaceRequest alta de espacio.
type CreateSpaceRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder int    `json:"sortOrder" validate:"min=0"`
}

// SpaceResponse espacio en respuestas HTTP.
type SpaceResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address"`
}

// ClientResponse cliente en respuestas HTTP.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateLocationRequest alta de sede.
type CreateLocationRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" validate:"longitude"`
}

// LocationResponse sede en respuestas HTTP.
type LocationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// NearestLocationResponse sede más cercana y distancia en km.
type NearestLocationResponse struct {
	Location   LocationResponse `json:"location"`
	DistanceKm float64          `json:"distanceKm"`
}
