package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"voyage-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "voyage.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, db))
	require.NoError(t, Seed(ctx, db, DialectSQLite, testSeed()))

	return NewSQLStore(db, DialectSQLite)
}

func testSeed() ReferenceSeed {
	inactive := false
	return ReferenceSeed{
		Vessels: []VesselSeed{
			{ID: "v-1", Name: "Nordic Star", Type: "TANKER", DraftMeters: 14.5, LOAMeters: 250, BeamMeters: 44},
		},
		Ports: []PortSeed{
			{ID: "NLRTM", Name: "Rotterdam", UNLocode: "NLRTM", Latitude: 51.95, Longitude: 4.14},
			{ID: "SGSIN", Name: "Singapore", UNLocode: "SGSIN", Latitude: 1.26, Longitude: 103.84},
		},
		Constraints: []ConstraintSeed{
			{ID: "c-suez", LocationName: "Suez Canal", MaxDraftMeters: domain.Float64(20.1)},
			{ID: "c-tank", LocationName: "Tanker lock", VesselType: "TANKER", MaxBeamMeters: domain.Float64(40)},
			{ID: "c-bulk", LocationName: "Bulk berth", VesselType: "BULK_CARRIER", MaxLOAMeters: domain.Float64(200)},
			{ID: "c-off", LocationName: "Closed lock", MaxDraftMeters: domain.Float64(5), Active: &inactive},
		},
	}
}

func testRoute(id string) *domain.Route {
	return &domain.Route{
		ID:              id,
		VesselID:        "v-1",
		OriginPortID:    "NLRTM",
		DestPortID:      "SGSIN",
		Type:            domain.RouteCalculated,
		VesselType:      domain.VesselTanker,
		OptimizeFor:     domain.OptimizeSpeed,
		Constraints:     domain.ConstraintSnapshot{MaxDraftMeters: 14.5, MaxLOAMeters: 250, MaxBeamMeters: 44},
		TotalDistanceNm: 5600,
		EstimatedHours:  400,
		FuelEstimateMt:  domain.Float64(500),
		ConfidenceScore: 0.3,
		Waypoints: []domain.Waypoint{
			{Sequence: 0, Lat: 51.95, Lon: 4.14, Name: "Rotterdam", Type: domain.WaypointDeparture,
				DistanceToNextNm: domain.Float64(2800), HoursToNext: domain.Float64(200)},
			{Sequence: 1, Lat: 26.6, Lon: 53.99, Name: "Midpoint", Type: domain.WaypointWaypoint,
				DistanceToNextNm: domain.Float64(2800), HoursToNext: domain.Float64(200)},
			{Sequence: 2, Lat: 1.26, Lon: 103.84, Name: "Singapore", Type: domain.WaypointArrival},
		},
		Warnings:  []string{"Newly calculated route"},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLStoreReferenceData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v, err := s.GetVessel(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, domain.VesselTanker, v.Type)
	assert.Equal(t, 14.5, v.DraftMeters)

	p, err := s.GetPort(ctx, "SGSIN")
	require.NoError(t, err)
	assert.Equal(t, "Singapore", p.Name)
	assert.Equal(t, 103.84, p.Longitude)

	_, err = s.GetVessel(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetPort(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLStoreListConstraints(t *testing.T) {
	s := openTestStore(t)

	cs, err := s.ListConstraints(context.Background(), domain.VesselTanker)
	require.NoError(t, err)

	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"c-suez", "c-tank"}, ids)

	for _, c := range cs {
		if c.ID == "c-suez" {
			require.NotNil(t, c.MaxDraftMeters)
			assert.Equal(t, 20.1, *c.MaxDraftMeters)
			assert.Nil(t, c.MaxLOAMeters)
			assert.Nil(t, c.MaxBeamMeters)
		}
	}
}

func TestSQLStoreRouteRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRoute(ctx, testRoute("r-1"))
	require.NoError(t, err)
	assert.Equal(t, "r-1", id)

	got, err := s.GetRoute(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RouteCalculated, got.Type)
	assert.Equal(t, 5600.0, got.TotalDistanceNm)
	require.NotNil(t, got.FuelEstimateMt)
	assert.Equal(t, 500.0, *got.FuelEstimateMt)
	assert.Equal(t, []string{"Newly calculated route"}, got.Warnings)
	assert.True(t, got.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	require.Len(t, got.Waypoints, 3)
	assert.Equal(t, domain.WaypointDeparture, got.Waypoints[0].Type)
	assert.Equal(t, domain.WaypointArrival, got.Waypoints[2].Type)
	assert.Nil(t, got.Waypoints[2].DistanceToNextNm)
	require.NotNil(t, got.Waypoints[1].HoursToNext)
	assert.Equal(t, 200.0, *got.Waypoints[1].HoursToNext)

	_, err = s.GetRoute(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLStoreHistoricalRouteRequiresUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	route := testRoute("r-1")
	_, err := s.CreateRoute(ctx, route)
	require.NoError(t, err)

	got, err := s.FindHistoricalRoute(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	assert.Nil(t, got, "unused routes are not historical")

	_, err = s.RecordVoyage(ctx, route, domain.VoyageOutcome{RouteID: route.ID, OnTime: true})
	require.NoError(t, err)

	got, err = s.FindHistoricalRoute(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r-1", got.ID)
	assert.Equal(t, 1, got.UsageCount)
	assert.Len(t, got.Waypoints, 3)

	other, err := s.FindHistoricalRoute(ctx, "NLRTM", "SGSIN", domain.VesselBulkCarrier)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSQLStoreRecordVoyageFoldsPattern(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	route := testRoute("r-1")
	_, err := s.CreateRoute(ctx, route)
	require.NoError(t, err)

	p, err := s.FindLearnedPattern(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	assert.Nil(t, p)

	outcomes := []domain.VoyageOutcome{
		{RouteID: "r-1", ActualHours: domain.Float64(390), OnTime: true},
		{RouteID: "r-1", ActualHours: domain.Float64(410), OnTime: true},
		{RouteID: "r-1", ActualHours: domain.Float64(420), OnTime: false},
	}
	for _, o := range outcomes {
		p, err = s.RecordVoyage(ctx, route, o)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, p.ObservedCount)
	assert.InDelta(t, 2.0/3.0, p.Reliability, 1e-9)
	assert.InDelta(t, 5600, p.AvgDistanceNm, 1e-9)
	assert.InDelta(t, 406.6666666, p.AvgDurationHours, 1e-6)
	assert.True(t, p.WaypointPattern.Usable())
	assert.Len(t, p.WaypointPattern.Points, 3)

	stored, err := s.FindLearnedPattern(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *p, *stored)

	r, err := s.GetRoute(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, 3, r.UsageCount)
}

func TestSQLStoreRecordVoyageUnknownRoute(t *testing.T) {
	s := openTestStore(t)

	_, err := s.RecordVoyage(context.Background(), testRoute("ghost"), domain.VoyageOutcome{RouteID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := s.FindLearnedPattern(context.Background(), "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSQLStoreRecordVoyageConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	route := testRoute("r-1")
	_, err := s.CreateRoute(ctx, route)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(onTime bool) {
			defer wg.Done()
			_, err := s.RecordVoyage(ctx, route, domain.VoyageOutcome{RouteID: route.ID, OnTime: onTime})
			errs <- err
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := s.FindLearnedPattern(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, n, p.ObservedCount)
	assert.InDelta(t, 0.5, p.Reliability, 1e-9)
}

func TestSQLStoreCorruptPatternPayloadIsEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, SeedPattern(ctx, s.DB, DialectSQLite, domain.LearnedRoutePattern{
		OriginPortID: "NLRTM", DestPortID: "SGSIN", VesselType: domain.VesselTanker,
		PatternName: "imported", ObservedCount: 5, Reliability: 0.9,
	}))
	_, err := s.DB.ExecContext(ctx, `UPDATE learned_route_patterns SET waypoint_pattern = '{not json'`)
	require.NoError(t, err)

	p, err := s.FindLearnedPattern(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, p.ObservedCount)
	assert.False(t, p.WaypointPattern.Usable())
}

func TestSQLStoreHistoricalRouteNewestWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// .1s is later than .12s only when compared as variable-width text.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := testRoute("r-older")
	older.CreatedAt = base.Add(100 * time.Millisecond)
	newer := testRoute("r-newer")
	newer.CreatedAt = base.Add(120 * time.Millisecond)

	for _, r := range []*domain.Route{older, newer} {
		_, err := s.CreateRoute(ctx, r)
		require.NoError(t, err)
		_, err = s.RecordVoyage(ctx, r, domain.VoyageOutcome{RouteID: r.ID, OnTime: true})
		require.NoError(t, err)
	}

	got, err := s.FindHistoricalRoute(ctx, "NLRTM", "SGSIN", domain.VesselTanker)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r-newer", got.ID)
	assert.True(t, got.CreatedAt.Equal(newer.CreatedAt))
}

func TestSQLStoreListVesselRoutes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"r-a", "r-b", "r-c"} {
		r := testRoute(id)
		r.CreatedAt = base.Add(time.Duration(i) * 10 * time.Millisecond)
		_, err := s.CreateRoute(ctx, r)
		require.NoError(t, err)
	}
	other := testRoute("r-other")
	other.VesselID = "v-2"
	_, err := s.CreateRoute(ctx, other)
	require.NoError(t, err)

	routes, err := s.ListVesselRoutes(ctx, "v-1", 0)
	require.NoError(t, err)
	require.Len(t, routes, 3)
	assert.Equal(t, []string{"r-c", "r-b", "r-a"}, routeIDs(routes))
	assert.Len(t, routes[0].Waypoints, 3)

	routes, err = s.ListVesselRoutes(ctx, "v-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-c", "r-b"}, routeIDs(routes))

	routes, err = s.ListVesselRoutes(ctx, "v-none", 0)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestSQLStoreListLearnedPatterns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, p := range patternFixtures() {
		require.NoError(t, SeedPattern(ctx, s.DB, DialectSQLite, p))
	}

	for _, tc := range patternFilterCases() {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListLearnedPatterns(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, patternNames(got))
		})
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, q, Rebind(DialectSQLite, q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", Rebind(DialectPostgres, q))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func routeIDs(routes []*domain.Route) []string {
	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}
	return ids
}

func patternNames(ps []*domain.LearnedRoutePattern) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.PatternName)
	}
	return names
}

func patternFixtures() []domain.LearnedRoutePattern {
	return []domain.LearnedRoutePattern{
		{OriginPortID: "NLRTM", DestPortID: "SGSIN", VesselType: domain.VesselTanker, PatternName: "rtm-sin-tanker", ObservedCount: 4, Reliability: 0.75},
		{OriginPortID: "NLRTM", DestPortID: "SGSIN", VesselType: domain.VesselContainer, PatternName: "rtm-sin-box", ObservedCount: 9, Reliability: 0.9},
		{OriginPortID: "NLRTM", DestPortID: "USNYC", VesselType: domain.VesselTanker, PatternName: "rtm-nyc-tanker", ObservedCount: 12, Reliability: 0.75},
		{OriginPortID: "SGSIN", DestPortID: "NLRTM", VesselType: domain.VesselTanker, PatternName: "sin-rtm-tanker", ObservedCount: 2, Reliability: 0.5},
	}
}

type patternFilterCase struct {
	name   string
	filter domain.PatternFilter
	want   []string
}

func patternFilterCases() []patternFilterCase {
	return []patternFilterCase{
		{"all", domain.PatternFilter{}, []string{"rtm-sin-box", "rtm-nyc-tanker", "rtm-sin-tanker", "sin-rtm-tanker"}},
		{"origin", domain.PatternFilter{OriginPortID: "NLRTM"}, []string{"rtm-sin-box", "rtm-nyc-tanker", "rtm-sin-tanker"}},
		{"destination and type", domain.PatternFilter{DestPortID: "SGSIN", VesselType: domain.VesselTanker}, []string{"rtm-sin-tanker"}},
		{"min reliability", domain.PatternFilter{MinReliability: 0.75}, []string{"rtm-sin-box", "rtm-nyc-tanker", "rtm-sin-tanker"}},
		{"limit", domain.PatternFilter{Limit: 2}, []string{"rtm-sin-box", "rtm-nyc-tanker"}},
		{"no match", domain.PatternFilter{VesselType: domain.VesselLNG}, []string{}},
	}
}
