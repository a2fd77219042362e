package geo

import (
	"math"
	"time"
)

const (
	earthRadiusKm  = 6371.0
	kmPerMile      = 1.609344
)

// Radii are the geofence thresholds around a job site, in increasing order:
// Arrival < Departure < Nearby. Loaded from config at startup and injected.
type Radii struct {
	ArrivalMeters   float64
	DepartureMeters float64
	NearbyMeters    float64
}

// Zone classifies a distance against the geofence radii.
type Zone int

const (
	ZoneArrival Zone = iota // within the arrival radius
	ZoneNearby              // outside arrival but within the nearby radius
	ZoneAway                // beyond the nearby radius
)

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceMeters returns the great-circle distance in meters.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKm(lat1, lng1, lat2, lng2) * 1000
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Classify places a distance into a geofence zone.
func (r Radii) Classify(distanceMeters float64) Zone {
	switch {
	case distanceMeters <= r.ArrivalMeters:
		return ZoneArrival
	case distanceMeters <= r.NearbyMeters:
		return ZoneNearby
	default:
		return ZoneAway
	}
}

// HasLeftSite reports whether a distance counts as having departed the site.
func (r Radii) HasLeftSite(distanceMeters float64) bool {
	return distanceMeters > r.DepartureMeters
}

// ETAMinutes estimates travel time as a straight-line distance at an assumed
// average speed. No routing or traffic data, deliberately.
func ETAMinutes(distanceMeters, assumedSpeedMph float64) float64 {
	miles := distanceMeters / 1000 / kmPerMile
	return miles / assumedSpeedMph * 60
}

// ETAAt anchors the estimate at the given time.
func ETAAt(now time.Time, distanceMeters, assumedSpeedMph float64) time.Time {
	minutes := ETAMinutes(distanceMeters, assumedSpeedMph)
	return now.Add(time.Duration(minutes * float64(time.Minute)))
}
