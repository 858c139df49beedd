package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/geo"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// LocationUseCase sedes del estudio y búsqueda de la más cercana.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create registra una sede.
func (uc *LocationUseCase) Create(ctx context.Context, tenantID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	l := &entity.TenantLocation{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Lat:       in.Lat,
		Lng:       in.Lng,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLocationResponse(l)
	return &out, nil
}

// List lista las sedes del estudio.
func (uc *LocationUseCase) List(ctx context.Context, tenantID string) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

// Nearest devuelve la sede más cercana a las coordenadas (haversine).
func (uc *LocationUseCase) Nearest(ctx context.Context, tenantID string, lat, lng float64) (*dto.NearestLocationResponse, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordenadas fuera de rango", domain.ErrInvalidInput)
	}
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	nearest, km, ok := geo.Nearest(toPoints(list), lat, lng)
	if !ok {
		return nil, fmt.Errorf("%w: el estudio no tiene sedes", domain.ErrNotFound)
	}
	for _, l := range list {
		if l.ID == nearest.ID {
			return &dto.NearestLocationResponse{Location: toLocationResponse(l), DistanceKm: km}, nil
		}
	}
	return nil, fmt.Errorf("%w: sede %s", domain.ErrNotFound, nearest.ID)
}

func toPoints(locs []*entity.TenantLocation) []geo.Point {
	points := make([]geo.Point, len(locs))
	for i, l := range locs {
		points[i] = geo.Point{ID: l.ID, Lat: l.Lat, Lng: l.Lng}
	}
	return points
}

func toLocationResponse(l *entity.TenantLocation) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Name: l.Name, Address: l.Address, Lat: l.Lat, Lng: l.Lng}
}
