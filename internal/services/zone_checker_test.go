package services

import (
	"context"
	"testing"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/zones"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRegistry(t *testing.T) *zones.Registry {
	t.Helper()
	reg, err := zones.NewRegistry([]domain.ZonePolygon{
		{ID: "sq", Name: "Square ECA", Code: "SQ", Vertices: [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}},
		{ID: "far", Name: "Far Zone", Code: "FAR", Vertices: [][2]float64{{40, 40}, {40, 50}, {50, 50}, {50, 40}}},
	})
	require.NoError(t, err)
	return reg
}

func TestZoneCheckerReport(t *testing.T) {
	m, err := obs.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	zc := NewZoneChecker(squareRegistry(t), nil, m)

	track := []domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}
	report, err := zc.Report(context.Background(), track, nil)
	require.NoError(t, err)

	require.Len(t, report.Intersections, 1)
	require.Len(t, report.Zones, 1)
	assert.Equal(t, "SQ", report.Zones[0].Zone.Code)
	assert.Equal(t, 1, report.Zones[0].Crossings)
	assert.InDelta(t, 597.7, report.Zones[0].DistanceNm, 597.7*0.05)
	assert.Equal(t, report.Zones[0].DistanceNm, report.TotalDistanceNm)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ZonePassages.WithLabelValues("SQ")))
}

func TestZoneCheckerReportSelectedCodes(t *testing.T) {
	zc := NewZoneChecker(squareRegistry(t), nil, nil)
	track := []domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}

	report, err := zc.Report(context.Background(), track, []string{"FAR"})
	require.NoError(t, err)
	assert.Empty(t, report.Intersections)
	assert.Empty(t, report.Zones)
	assert.Equal(t, 0.0, report.TotalDistanceNm)

	_, err = zc.Report(context.Background(), track, []string{"NOPE"})
	assert.ErrorIs(t, err, zones.ErrUnknownZone)
}

func TestZoneCheckerReportRepeatedCodes(t *testing.T) {
	m, err := obs.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	zc := NewZoneChecker(squareRegistry(t), nil, m)
	track := []domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}

	once, err := zc.Report(context.Background(), track, []string{"SQ"})
	require.NoError(t, err)
	twice, err := zc.Report(context.Background(), track, []string{"SQ", "SQ"})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	require.Len(t, twice.Zones, 1)
	assert.Equal(t, 1, twice.Zones[0].Crossings)
	assert.Len(t, twice.Intersections, 1)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ZonePassages.WithLabelValues("SQ")))
}

func TestZoneCheckerRouteReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, func() error {
		_, err := store.CreateRoute(ctx, &domain.Route{
			ID: "r-1",
			Waypoints: []domain.Waypoint{
				{Lat: 5, Lon: -5, Type: domain.WaypointDeparture},
				{Lat: 5, Lon: 15, Type: domain.WaypointArrival},
			},
		})
		return err
	}())

	zc := NewZoneChecker(squareRegistry(t), store, nil)
	report, err := zc.RouteReport(ctx, "r-1")
	require.NoError(t, err)
	assert.Len(t, report.Zones, 1)

	_, err = zc.RouteReport(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestZoneCheckerMatchAndDistance(t *testing.T) {
	zc := NewZoneChecker(squareRegistry(t), nil, nil)

	got := zc.Match(domain.GeoPoint{Lat: 5, Lon: 5})
	require.Len(t, got, 1)
	assert.Equal(t, "SQ", got[0].Code)
	assert.Empty(t, zc.Match(domain.GeoPoint{Lat: 30, Lon: 30}))

	d := zc.DistanceInPolygon([]domain.GeoPoint{{Lat: 5, Lon: -5}, {Lat: 5, Lon: 15}}, [][2]float64{{0, 0}, {0, 10}})
	assert.Equal(t, 0.0, d)
}
