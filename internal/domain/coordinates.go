package domain

import "math"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the pair lies inside [-180,180] x [-90,90].
func (c Coordinates) Valid() bool {
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Centroid returns the geographic center of the given points.
// The zero value is returned for an empty slice.
func Centroid(points []Coordinates) Coordinates {
	if len(points) == 0 {
		return Coordinates{}
	}

	var sumLng, sumLat float64
	for _, p := range points {
		sumLng += p.Lng
		sumLat += p.Lat
	}

	return Coordinates{
		Lng: sumLng / float64(len(points)),
		Lat: sumLat / float64(len(points)),
	}
}
