package geo

import (
	"testing"

	"voyage-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var squareZone = domain.ZonePolygon{ID: "sq", Name: "Square", Code: "SQ", Vertices: square}

func TestIntersectRouteOutsideAllZones(t *testing.T) {
	route := []domain.GeoPoint{{Lat: 20, Lon: -5}, {Lat: 20, Lon: 15}, {Lat: 30, Lon: 15}}
	assert.Empty(t, IntersectRoute(route, []domain.ZonePolygon{squareZone}))
}

func TestIntersectRouteNeedsTwoWaypoints(t *testing.T) {
	assert.Empty(t, IntersectRoute(nil, []domain.ZonePolygon{squareZone}))
	assert.Empty(t, IntersectRoute([]domain.GeoPoint{{Lat: 5, Lon: 5}}, []domain.ZonePolygon{squareZone}))
}

func TestIntersectRouteStraightCrossing(t *testing.T) {
	route := []domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}
	tolerance := 20.0 / IntersectSampleSteps

	got := IntersectRoute(route, []domain.ZonePolygon{squareZone})
	require.Len(t, got, 1)

	x := got[0]
	assert.Equal(t, "SQ", x.Zone.Code)
	assert.Equal(t, 0, x.SegmentIndex)
	assert.InDelta(t, 0, x.EntryPoint.Lon, tolerance)
	assert.InDelta(t, 10, x.ExitPoint.Lon, tolerance)
	assert.InDelta(t, 5, x.EntryPoint.Lat, 1e-9)
}

func TestIntersectRouteStartsInsideAndEndsInside(t *testing.T) {
	route := []domain.GeoPoint{{Lat: 5, Lon: 5}, {Lat: 5, Lon: 8}, {Lat: 6, Lon: 9}}

	got := IntersectRoute(route, []domain.ZonePolygon{squareZone})
	require.Len(t, got, 1)
	assert.Equal(t, route[0], got[0].EntryPoint)
	assert.Equal(t, route[2], got[0].ExitPoint)
	assert.Equal(t, 0, got[0].SegmentIndex)
}

func TestIntersectRouteMultiplePassages(t *testing.T) {
	route := []domain.GeoPoint{
		{Lat: 5, Lon: -5},
		{Lat: 5, Lon: 15},
		{Lat: 8, Lon: 15},
		{Lat: 8, Lon: -5},
	}

	got := IntersectRoute(route, []domain.ZonePolygon{squareZone})
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].SegmentIndex)
	assert.Equal(t, 2, got[1].SegmentIndex)
	assert.Greater(t, got[1].EntryPoint.Lon, got[1].ExitPoint.Lon)
}

func TestIntersectRouteZonesIndependent(t *testing.T) {
	other := domain.ZonePolygon{ID: "far", Code: "FAR", Vertices: [][2]float64{{40, 40}, {40, 50}, {50, 50}, {50, 40}}}
	degenerate := domain.ZonePolygon{ID: "line", Code: "LINE", Vertices: [][2]float64{{0, 0}, {10, 10}}}
	route := []domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}

	got := IntersectRoute(route, []domain.ZonePolygon{other, squareZone, degenerate})
	require.Len(t, got, 1)
	assert.Equal(t, "SQ", got[0].Zone.Code)
}
