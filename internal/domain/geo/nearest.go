// Package geo calcula distancias sobre la esfera terrestre (haversine).
package geo

import "math"

const earthRadiusKm = 6371

// Point es una ubicación identificada.
type Point struct {
	ID  string
	Lat float64
	Lng float64
}

// DistanceKm devuelve la distancia haversine entre dos coordenadas en kilómetros.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Nearest devuelve el punto más cercano a (lat, lng). ok=false si points está vacío.
// En empate gana el primero.
func Nearest(points []Point, lat, lng float64) (nearest Point, distanceKm float64, ok bool) {
	distanceKm = math.Inf(1)
	for _, p := range points {
		d := DistanceKm(lat, lng, p.Lat, p.Lng)
		if d < distanceKm {
			nearest, distanceKm, ok = p, d, true
		}
	}
	return nearest, distanceKm, ok
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
