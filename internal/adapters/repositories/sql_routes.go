package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
)

const routeColumns = `
	id, vessel_id, origin_port_id, dest_port_id, route_type, vessel_type, optimize_for,
	draft_meters, loa_meters, beam_meters,
	total_distance_nm, estimated_hours, fuel_estimate_mt, confidence_score, usage_count,
	avoided_eca_zones, avoided_high_risk, considered_congestion, considered_weather,
	warnings, created_at`

// Timestamps are stored as fixed-width UTC text so that ORDER BY on the
// column matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var (
		r                                  domain.Route
		routeType, vesselType, optimizeFor string
		fuel                               sql.NullFloat64
		warnings, createdAt                string
	)

	err := row.Scan(
		&r.ID, &r.VesselID, &r.OriginPortID, &r.DestPortID, &routeType, &vesselType, &optimizeFor,
		&r.Constraints.MaxDraftMeters, &r.Constraints.MaxLOAMeters, &r.Constraints.MaxBeamMeters,
		&r.TotalDistanceNm, &r.EstimatedHours, &fuel, &r.ConfidenceScore, &r.UsageCount,
		&r.AvoidedEcaZones, &r.AvoidedHighRisk, &r.ConsideredCongestion, &r.ConsideredWeather,
		&warnings, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.Type = domain.RouteType(routeType)
	r.VesselType = domain.VesselType(vesselType)
	r.OptimizeFor = domain.OptimizeFor(optimizeFor)
	r.FuelEstimateMt = floatPtr(fuel)

	r.Warnings = []string{}
	if warnings != "" {
		if err := json.Unmarshal([]byte(warnings), &r.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings: %w", err)
		}
	}
	if createdAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = t
		}
	}

	return &r, nil
}

// Return the learned pattern for the key, or nil when none exists.
func (s *SQLStore) FindLearnedPattern(
	ctx context.Context,
	originPortID, destPortID string,
	vesselType domain.VesselType,
) (_ *domain.LearnedRoutePattern, err error) {
	defer obs.Time(ctx, "store.FindLearnedPattern")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`
	SELECT origin_port_id, dest_port_id, vessel_type, pattern_name, observed_count,
		reliability, avg_distance_nm, avg_duration_hours, waypoint_pattern
	FROM learned_route_patterns
	WHERE origin_port_id = ? AND dest_port_id = ? AND vessel_type = ?;
	`)

	p, err := scanPattern(s.DB.QueryRowContext(ctx, q, originPortID, destPortID, string(vesselType)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find learned pattern %s->%s: %w", originPortID, destPortID, err)
	}
	return p, nil
}

func scanPattern(row rowScanner) (*domain.LearnedRoutePattern, error) {
	var p domain.LearnedRoutePattern
	var vt, payload string
	if err := row.Scan(
		&p.OriginPortID, &p.DestPortID, &vt, &p.PatternName, &p.ObservedCount,
		&p.Reliability, &p.AvgDistanceNm, &p.AvgDurationHours, &payload,
	); err != nil {
		return nil, err
	}
	p.VesselType = domain.VesselType(vt)
	p.WaypointPattern = domain.ParseWaypointPattern([]byte(payload))
	return &p, nil
}

// Return the most trusted used route for the key, or nil when none exists.
func (s *SQLStore) FindHistoricalRoute(
	ctx context.Context,
	originPortID, destPortID string,
	vesselType domain.VesselType,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "store.FindHistoricalRoute")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`
	SELECT` + routeColumns + `
	FROM vessel_routes
	WHERE origin_port_id = ? AND dest_port_id = ? AND vessel_type = ?
		AND usage_count >= 1
	ORDER BY confidence_score DESC, usage_count DESC, created_at DESC
	LIMIT 1;
	`)

	r, err := scanRoute(s.DB.QueryRowContext(ctx, q, originPortID, destPortID, string(vesselType)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find historical route %s->%s: %w", originPortID, destPortID, err)
	}

	if r.Waypoints, err = s.loadWaypoints(ctx, r.ID); err != nil {
		return nil, fmt.Errorf("find historical route %s->%s: %w", originPortID, destPortID, err)
	}
	return r, nil
}

// Return the stored route with its waypoints.
func (s *SQLStore) GetRoute(ctx context.Context, id string) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "store.GetRoute")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`SELECT` + routeColumns + ` FROM vessel_routes WHERE id = ?;`)

	r, err := scanRoute(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get route %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get route %q: %w", id, err)
	}

	if r.Waypoints, err = s.loadWaypoints(ctx, r.ID); err != nil {
		return nil, fmt.Errorf("get route %q: %w", id, err)
	}
	return r, nil
}

func (s *SQLStore) loadWaypoints(ctx context.Context, routeID string) ([]domain.Waypoint, error) {
	q := s.rebind(`
	SELECT sequence_number, latitude, longitude, name, waypoint_type,
		distance_to_next_nm, hours_to_next, speed_limit_knots
	FROM vessel_route_waypoints
	WHERE route_id = ?
	ORDER BY sequence_number;
	`)

	rows, err := s.DB.QueryContext(ctx, q, routeID)
	if err != nil {
		return nil, fmt.Errorf("load waypoints: query vessel_route_waypoints table: %w", err)
	}
	defer rows.Close()

	out := []domain.Waypoint{}
	for rows.Next() {
		var w domain.Waypoint
		var wt string
		var dist, hours, speed sql.NullFloat64
		if err := rows.Scan(&w.Sequence, &w.Lat, &w.Lon, &w.Name, &wt, &dist, &hours, &speed); err != nil {
			return nil, fmt.Errorf("load waypoints: scan row: %w", err)
		}
		w.Type = domain.WaypointType(wt)
		w.DistanceToNextNm = floatPtr(dist)
		w.HoursToNext = floatPtr(hours)
		w.SpeedLimitKnots = floatPtr(speed)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load waypoints: row iteration: %w", err)
	}

	return out, nil
}

// Store the route and its waypoints in one transaction.
func (s *SQLStore) CreateRoute(ctx context.Context, route *domain.Route) (_ string, err error) {
	defer obs.Time(ctx, "store.CreateRoute")(&err)
	if err := s.check(); err != nil {
		return "", err
	}
	if route == nil || route.ID == "" {
		return "", errors.New("create route: route id must be set")
	}

	warnings, err := json.Marshal(nonNil(route.Warnings))
	if err != nil {
		return "", fmt.Errorf("create route: encode warnings: %w", err)
	}
	createdAt := route.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("create route: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, s.rebind(`
	INSERT INTO vessel_routes (`+routeColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`),
		route.ID, route.VesselID, route.OriginPortID, route.DestPortID,
		string(route.Type), string(route.VesselType), string(route.OptimizeFor),
		route.Constraints.MaxDraftMeters, route.Constraints.MaxLOAMeters, route.Constraints.MaxBeamMeters,
		route.TotalDistanceNm, route.EstimatedHours, nullFloat(route.FuelEstimateMt), route.ConfidenceScore, route.UsageCount,
		route.AvoidedEcaZones, route.AvoidedHighRisk, route.ConsideredCongestion, route.ConsideredWeather,
		string(warnings), formatTimestamp(createdAt),
	)
	if err != nil {
		return "", fmt.Errorf("create route: insert vessel_routes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
	INSERT INTO vessel_route_waypoints (
		route_id, sequence_number, latitude, longitude, name, waypoint_type,
		distance_to_next_nm, hours_to_next, speed_limit_knots
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return "", fmt.Errorf("create route: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, w := range route.Waypoints {
		if _, err := stmt.ExecContext(ctx,
			route.ID, i, w.Lat, w.Lon, w.Name, string(w.Type),
			nullFloat(w.DistanceToNextNm), nullFloat(w.HoursToNext), nullFloat(w.SpeedLimitKnots),
		); err != nil {
			return "", fmt.Errorf("create route: insert waypoint #%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("create route: commit: %w", err)
	}

	return route.ID, nil
}

// Count a completed voyage on the route and fold it into the learned pattern
// for the route's key. The pattern row is maintained by a single upsert so
// concurrent voyages on the same key never lose observations.
func (s *SQLStore) RecordVoyage(
	ctx context.Context,
	route *domain.Route,
	outcome domain.VoyageOutcome,
) (_ *domain.LearnedRoutePattern, err error) {
	defer obs.Time(ctx, "store.RecordVoyage")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	sample := newVoyageSample(route, outcome)
	payload, err := json.Marshal(sample.pattern)
	if err != nil {
		return nil, fmt.Errorf("record voyage: encode waypoint pattern: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("record voyage: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.rebind(`
	UPDATE vessel_routes SET usage_count = usage_count + 1 WHERE id = ?;
	`), route.ID)
	if err != nil {
		return nil, fmt.Errorf("record voyage: update vessel_routes: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("record voyage: route %q: %w", route.ID, domain.ErrNotFound)
	}

	row := tx.QueryRowContext(ctx, s.rebind(`
	INSERT INTO learned_route_patterns (
		origin_port_id, dest_port_id, vessel_type, pattern_name, observed_count,
		reliability, avg_distance_nm, avg_duration_hours, waypoint_pattern, last_observed_at
	)
	VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?, ?)
	ON CONFLICT (origin_port_id, dest_port_id, vessel_type) DO UPDATE
	SET observed_count = learned_route_patterns.observed_count + 1,
		reliability = (learned_route_patterns.reliability * learned_route_patterns.observed_count + EXCLUDED.reliability)
			/ (learned_route_patterns.observed_count + 1),
		avg_distance_nm = (learned_route_patterns.avg_distance_nm * learned_route_patterns.observed_count + EXCLUDED.avg_distance_nm)
			/ (learned_route_patterns.observed_count + 1),
		avg_duration_hours = (learned_route_patterns.avg_duration_hours * learned_route_patterns.observed_count + EXCLUDED.avg_duration_hours)
			/ (learned_route_patterns.observed_count + 1),
		waypoint_pattern = EXCLUDED.waypoint_pattern,
		last_observed_at = EXCLUDED.last_observed_at
	RETURNING origin_port_id, dest_port_id, vessel_type, pattern_name, observed_count,
		reliability, avg_distance_nm, avg_duration_hours, waypoint_pattern;
	`),
		route.OriginPortID, route.DestPortID, string(route.VesselType), sample.name,
		sample.onTime, sample.distanceNm, sample.durationHours, string(payload),
		formatTimestamp(time.Now()),
	)

	p, err := scanPattern(row)
	if err != nil {
		return nil, fmt.Errorf("record voyage: upsert learned_route_patterns: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("record voyage: commit: %w", err)
	}

	return p, nil
}

// Return the vessel's routes with waypoints, newest first.
func (s *SQLStore) ListVesselRoutes(ctx context.Context, vesselID string, limit int) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "store.ListVesselRoutes")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultRouteListLimit
	}

	q := s.rebind(`
	SELECT` + routeColumns + `
	FROM vessel_routes
	WHERE vessel_id = ?
	ORDER BY created_at DESC, id
	LIMIT ?;
	`)

	rows, err := s.DB.QueryContext(ctx, q, vesselID, limit)
	if err != nil {
		return nil, fmt.Errorf("list vessel routes %q: query vessel_routes table: %w", vesselID, err)
	}

	out := []*domain.Route{}
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("list vessel routes %q: scan row: %w", vesselID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list vessel routes %q: row iteration: %w", vesselID, err)
	}
	// Release the connection before the waypoint queries.
	rows.Close()

	for _, r := range out {
		if r.Waypoints, err = s.loadWaypoints(ctx, r.ID); err != nil {
			return nil, fmt.Errorf("list vessel routes %q: %w", vesselID, err)
		}
	}
	return out, nil
}

// Return learned patterns matching f, most reliable first.
func (s *SQLStore) ListLearnedPatterns(ctx context.Context, f domain.PatternFilter) (_ []*domain.LearnedRoutePattern, err error) {
	defer obs.Time(ctx, "store.ListLearnedPatterns")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if f.OriginPortID != "" {
		where = append(where, "origin_port_id = ?")
		args = append(args, f.OriginPortID)
	}
	if f.DestPortID != "" {
		where = append(where, "dest_port_id = ?")
		args = append(args, f.DestPortID)
	}
	if f.VesselType != "" {
		where = append(where, "vessel_type = ?")
		args = append(args, string(f.VesselType))
	}
	if f.MinReliability > 0 {
		where = append(where, "reliability >= ?")
		args = append(args, f.MinReliability)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultPatternListLimit
	}
	args = append(args, limit)

	q := `
	SELECT origin_port_id, dest_port_id, vessel_type, pattern_name, observed_count,
		reliability, avg_distance_nm, avg_duration_hours, waypoint_pattern
	FROM learned_route_patterns`
	if len(where) > 0 {
		q += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	q += `
	ORDER BY reliability DESC, observed_count DESC, origin_port_id, dest_port_id, vessel_type
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list learned patterns: query learned_route_patterns table: %w", err)
	}
	defer rows.Close()

	out := []*domain.LearnedRoutePattern{}
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("list learned patterns: scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list learned patterns: row iteration: %w", err)
	}
	return out, nil
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
