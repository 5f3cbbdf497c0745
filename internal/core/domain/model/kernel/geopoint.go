package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// GeoPoint is a shared-location value object. It is produced from inbound
// location messages and converted into a map link for order intake.
type GeoPoint struct {
	lat float64
	lng float64
}

// NewGeoPoint validates the coordinates and returns the point.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < minLatitude || lat > maxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, minLatitude, maxLatitude)
	}
	if lng < minLongitude || lng > maxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lng, minLongitude, maxLongitude)
	}
	return GeoPoint{lat: lat, lng: lng}, nil
}

// Lat returns the latitude.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// MapLink synthesizes the map URL stored as an order's location link when a
// requester shares coordinates instead of sending a link.
func (p GeoPoint) MapLink() string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", p.lat, p.lng)
}
