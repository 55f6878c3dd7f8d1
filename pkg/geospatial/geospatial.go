package geospatial

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var (
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// Point builds an orb.Point from a latitude/longitude pair, validating
// WGS84 bounds. orb points are (lon, lat).
func Point(latitude, longitude float64) (orb.Point, error) {
	if latitude < -90 || latitude > 90 {
		return orb.Point{}, ErrLatitudeOutOfRange
	}
	if longitude < -180 || longitude > 180 {
		return orb.Point{}, ErrLongitudeOutOfRange
	}
	return orb.Point{longitude, latitude}, nil
}

// ValidateCoordinates checks a latitude/longitude pair against WGS84 bounds
func ValidateCoordinates(latitude, longitude float64) error {
	_, err := Point(latitude, longitude)
	return err
}

// DistanceMeters returns the haversine distance between two points
func DistanceMeters(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}
