package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/atelier-api/internal/domain/geo"
)

func TestDistanceKm_BogotaMedellin(t *testing.T) {
	// Bogotá (4.711, -74.0721) – Medellín (6.2442, -75.5812): ~240 km en línea recta.
	d := geo.DistanceKm(4.711, -74.0721, 6.2442, -75.5812)
	assert.InDelta(t, 240, d, 5)
}

func TestDistanceKm_MismoPunto(t *testing.T) {
	assert.InDelta(t, 0, geo.DistanceKm(40.7, -74, 40.7, -74), 1e-9)
}

func TestNearest(t *testing.T) {
	points := []geo.Point{
		{ID: "nyc", Lat: 40.7128, Lng: -74.0060},
		{ID: "la", Lat: 34.0522, Lng: -118.2437},
		{ID: "chi", Lat: 41.8781, Lng: -87.6298},
	}
	// Filadelfia queda más cerca de Nueva York.
	p, d, ok := geo.Nearest(points, 39.9526, -75.1652)
	assert.True(t, ok)
	assert.Equal(t, "nyc", p.ID)
	assert.Less(t, d, 150.0)
}

func TestNearest_SinPuntos(t *testing.T) {
	_, _, ok := geo.Nearest(nil, 0, 0)
	assert.False(t, ok)
}

func TestNearest_EmpateGanaElPrimero(t *testing.T) {
	points := []geo.Point{{ID: "a", Lat: 1, Lng: 0}, {ID: "b", Lat: -1, Lng: 0}}
	p, _, ok := geo.Nearest(points, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, "a", p.ID)
}
