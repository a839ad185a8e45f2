// Package geo holds the pure geometry used for route planning and zone
// compliance: great-circle distance, point-in-polygon tests and sampled
// route/zone intersection. Nothing in this package performs I/O.
package geo

import (
	"math"

	"voyage-route-service/internal/domain"
)

// Mean Earth radius in nautical miles.
const EarthRadiusNm = 3440.065

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// HaversineNm returns the great-circle distance between a and b in nautical miles.
func HaversineNm(a, b domain.GeoPoint) float64 {
	dLat := ToRadians(b.Lat - a.Lat)
	dLon := ToRadians(b.Lon - a.Lon)

	sinHalfLat := math.Sin(dLat / 2)
	sinHalfLon := math.Sin(dLon / 2)

	h := sinHalfLat*sinHalfLat +
		math.Cos(ToRadians(a.Lat))*math.Cos(ToRadians(b.Lat))*sinHalfLon*sinHalfLon

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusNm * c
}

// Interpolate returns the point at fraction t in [0, 1] along the straight
// line from a to b in lat/lon space. This is not a geodesic interpolation.
func Interpolate(a, b domain.GeoPoint, t float64) domain.GeoPoint {
	return domain.GeoPoint{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
}

// Midpoint is the arithmetic mean of the two coordinates.
func Midpoint(a, b domain.GeoPoint) domain.GeoPoint {
	return domain.GeoPoint{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TrackDistanceNm sums the haversine length of every leg of the track.
func TrackDistanceNm(track []domain.GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(track); i++ {
		total += HaversineNm(track[i-1], track[i])
	}
	return total
}
