package order

import (
	"time"

	"orderflow/internal/pkg/errs"
)

const (
	latitudeMin  = -90.0
	latitudeMax  = 90.0
	longitudeMin = -180.0
	longitudeMax = 180.0
)

// LocationPoint is one position report from an active delivery partner.
// Points form an append-only series per order; the full series is retained for
// audit even though callers normally only read the most recent point.
type LocationPoint struct {
	latitude  float64
	longitude float64
	timestamp time.Time
}

// NewLocationPoint validates coordinates and creates a point.
func NewLocationPoint(latitude, longitude float64, timestamp time.Time) (LocationPoint, error) {
	if latitude < latitudeMin || latitude > latitudeMax {
		return LocationPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, latitudeMin, latitudeMax)
	}
	if longitude < longitudeMin || longitude > longitudeMax {
		return LocationPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, longitudeMin, longitudeMax)
	}

	return LocationPoint{
		latitude:  latitude,
		longitude: longitude,
		timestamp: timestamp,
	}, nil
}

// Latitude returns the reported latitude in degrees.
func (p LocationPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the reported longitude in degrees.
func (p LocationPoint) Longitude() float64 {
	return p.longitude
}

// Timestamp returns when the position was reported.
func (p LocationPoint) Timestamp() time.Time {
	return p.timestamp
}
