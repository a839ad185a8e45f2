package services

import (
	"testing"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ports on the equator exactly 1000 nm apart.
func equatorPorts() (*domain.Port, *domain.Port) {
	lon := geo.ToDegrees(1000 / geo.EarthRadiusNm)
	return &domain.Port{ID: "A", Name: "Alpha", Latitude: 0, Longitude: 0},
		&domain.Port{ID: "B", Name: "Bravo", Latitude: 0, Longitude: lon}
}

func testVessel() *domain.Vessel {
	return &domain.Vessel{ID: "v-1", Name: "Nordic Star", Type: domain.VesselTanker, DraftMeters: 14.5, LOAMeters: 250, BeamMeters: 44}
}

func TestCalculateRoute1000nm(t *testing.T) {
	origin, dest := equatorPorts()

	r := CalculateRoute(testVessel(), origin, dest, domain.RouteRequest{})

	assert.Equal(t, domain.RouteCalculated, r.Type)
	assert.InDelta(t, 1000, r.TotalDistanceNm, 0.01)
	assert.InDelta(t, 1000.0/14, r.EstimatedHours, 0.01)
	require.NotNil(t, r.FuelEstimateMt)
	assert.Greater(t, *r.FuelEstimateMt, 0.0)
	assert.InDelta(t, 1000.0/14/24*30, *r.FuelEstimateMt, 0.01)
	assert.Equal(t, 0.3, r.ConfidenceScore)
	assert.Contains(t, r.Warnings, CalculatedRouteWarning)
	assert.Equal(t, domain.OptimizeSpeed, r.OptimizeFor)
}

func TestCalculateRouteTrack(t *testing.T) {
	origin := &domain.Port{ID: "NLRTM", Name: "Rotterdam", Latitude: 51.95, Longitude: 4.14}
	dest := &domain.Port{ID: "USNYC", Name: "New York", Latitude: 40.68, Longitude: -74.04}

	r := CalculateRoute(testVessel(), origin, dest, domain.RouteRequest{})
	require.Len(t, r.Waypoints, 3)

	first, mid, last := r.Waypoints[0], r.Waypoints[1], r.Waypoints[2]
	assert.Equal(t, domain.WaypointDeparture, first.Type)
	assert.Equal(t, domain.WaypointWaypoint, mid.Type)
	assert.Equal(t, domain.WaypointArrival, last.Type)

	// Arithmetic mean, not the great-circle midpoint.
	assert.InDelta(t, (51.95+40.68)/2, mid.Lat, 1e-9)
	assert.InDelta(t, (4.14-74.04)/2, mid.Lon, 1e-9)

	for i, w := range r.Waypoints {
		assert.Equal(t, i, w.Sequence)
	}
	require.NotNil(t, first.DistanceToNextNm)
	require.NotNil(t, mid.DistanceToNextNm)
	assert.Nil(t, last.DistanceToNextNm)
	assert.Nil(t, last.HoursToNext)
	require.NotNil(t, first.HoursToNext)
	assert.InDelta(t, *first.DistanceToNextNm/ReferenceSpeedKnots, *first.HoursToNext, 0.01)
}

func TestCalculateRouteSnapshotUsesOverrides(t *testing.T) {
	origin, dest := equatorPorts()
	req := domain.RouteRequest{DraftMeters: domain.Float64(11), OptimizeFor: domain.OptimizeFuel, AvoidEcaZones: true}

	r := CalculateRoute(testVessel(), origin, dest, req)

	assert.Equal(t, 11.0, r.Constraints.MaxDraftMeters)
	assert.Equal(t, 250.0, r.Constraints.MaxLOAMeters)
	assert.Equal(t, 44.0, r.Constraints.MaxBeamMeters)
	assert.Equal(t, domain.OptimizeFuel, r.OptimizeFor)
	assert.True(t, r.AvoidedEcaZones)
	assert.False(t, r.AvoidedHighRisk)
}

func TestCalculateRouteSamePort(t *testing.T) {
	origin, _ := equatorPorts()

	r := CalculateRoute(testVessel(), origin, origin, domain.RouteRequest{})

	assert.Equal(t, 0.0, r.TotalDistanceNm)
	assert.Equal(t, 0.0, r.EstimatedHours)
	require.NotNil(t, r.FuelEstimateMt)
	assert.Equal(t, 0.0, *r.FuelEstimateMt)
}
