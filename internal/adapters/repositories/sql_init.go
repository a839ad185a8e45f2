package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"voyage-route-service/internal/domain"
)

// Initialize the database schema. The DDL is shared by SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVesselsQuery := `
	CREATE TABLE IF NOT EXISTS vessels (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		vessel_type TEXT NOT NULL,
		draft_meters DOUBLE PRECISION NOT NULL,
		loa_meters DOUBLE PRECISION NOT NULL,
		beam_meters DOUBLE PRECISION NOT NULL
	);
	`

	createPortsQuery := `
	CREATE TABLE IF NOT EXISTS ports (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unlocode TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	createConstraintsQuery := `
	CREATE TABLE IF NOT EXISTS route_constraints (
		id TEXT PRIMARY KEY,
		location_name TEXT NOT NULL,
		vessel_type TEXT NOT NULL DEFAULT '',
		max_draft_meters DOUBLE PRECISION,
		max_loa_meters DOUBLE PRECISION,
		max_beam_meters DOUBLE PRECISION,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS vessel_routes (
		id TEXT PRIMARY KEY,
		vessel_id TEXT NOT NULL,
		origin_port_id TEXT NOT NULL,
		dest_port_id TEXT NOT NULL,
		route_type TEXT NOT NULL,
		vessel_type TEXT NOT NULL,
		optimize_for TEXT NOT NULL,
		draft_meters DOUBLE PRECISION NOT NULL,
		loa_meters DOUBLE PRECISION NOT NULL,
		beam_meters DOUBLE PRECISION NOT NULL,
		total_distance_nm DOUBLE PRECISION NOT NULL,
		estimated_hours DOUBLE PRECISION NOT NULL,
		fuel_estimate_mt DOUBLE PRECISION,
		confidence_score DOUBLE PRECISION NOT NULL,
		usage_count INTEGER NOT NULL DEFAULT 0,
		avoided_eca_zones BOOLEAN NOT NULL DEFAULT FALSE,
		avoided_high_risk BOOLEAN NOT NULL DEFAULT FALSE,
		considered_congestion BOOLEAN NOT NULL DEFAULT FALSE,
		considered_weather BOOLEAN NOT NULL DEFAULT FALSE,
		warnings TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS vessel_route_waypoints (
		route_id TEXT NOT NULL REFERENCES vessel_routes(id) ON DELETE CASCADE,
		sequence_number INTEGER NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		waypoint_type TEXT NOT NULL,
		distance_to_next_nm DOUBLE PRECISION,
		hours_to_next DOUBLE PRECISION,
		speed_limit_knots DOUBLE PRECISION,
		PRIMARY KEY (route_id, sequence_number)
	);
	`

	createPatternsQuery := `
	CREATE TABLE IF NOT EXISTS learned_route_patterns (
		origin_port_id TEXT NOT NULL,
		dest_port_id TEXT NOT NULL,
		vessel_type TEXT NOT NULL,
		pattern_name TEXT NOT NULL,
		observed_count INTEGER NOT NULL,
		reliability DOUBLE PRECISION NOT NULL,
		avg_distance_nm DOUBLE PRECISION NOT NULL,
		avg_duration_hours DOUBLE PRECISION NOT NULL,
		waypoint_pattern TEXT NOT NULL DEFAULT '',
		last_observed_at TEXT NOT NULL,
		PRIMARY KEY (origin_port_id, dest_port_id, vessel_type)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_vessel_routes_key
	ON vessel_routes(origin_port_id, dest_port_id, vessel_type);
	`

	statements := []string{
		createVesselsQuery,
		createPortsQuery,
		createConstraintsQuery,
		createRoutesQuery,
		createWaypointsQuery,
		createPatternsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VesselSeed struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	DraftMeters float64 `json:"draft_meters"`
	LOAMeters   float64 `json:"loa_meters"`
	BeamMeters  float64 `json:"beam_meters"`
}

type PortSeed struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UNLocode  string  `json:"unlocode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ConstraintSeed struct {
	ID             string   `json:"id"`
	LocationName   string   `json:"location_name"`
	VesselType     string   `json:"vessel_type"`
	MaxDraftMeters *float64 `json:"max_draft_meters"`
	MaxLOAMeters   *float64 `json:"max_loa_meters"`
	MaxBeamMeters  *float64 `json:"max_beam_meters"`
	Active         *bool    `json:"active"`
}

// Reference data loaded by SeedFromJSON.
type ReferenceSeed struct {
	Vessels     []VesselSeed     `json:"vessels"`
	Ports       []PortSeed       `json:"ports"`
	Constraints []ConstraintSeed `json:"constraints"`
}

func (r ReferenceSeed) validate() error {
	for i, v := range r.Vessels {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("vessel at index %d: id cannot be empty", i+1)
		}
		if v.DraftMeters <= 0 || v.LOAMeters <= 0 || v.BeamMeters <= 0 {
			return fmt.Errorf("vessel %q: dimensions must be positive", v.ID)
		}
	}
	for i, p := range r.Ports {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("port at index %d: id cannot be empty", i+1)
		}
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			return fmt.Errorf("port %q: position out of range", p.ID)
		}
	}
	for i, c := range r.Constraints {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.LocationName) == "" {
			return fmt.Errorf("constraint at index %d: id and location_name cannot be empty", i+1)
		}
	}
	return nil
}

// Populate vessels, ports and constraints from a JSON file. Existing rows
// with the same id are replaced.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed reference data: read %q: %w", jsonPath, err)
	}

	var data ReferenceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed reference data: parse json: %w", err)
	}

	return Seed(ctx, db, dialect, data)
}

// Seed writes reference data in one transaction.
func Seed(ctx context.Context, db *sql.DB, dialect Dialect, data ReferenceSeed) error {
	if err := data.validate(); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed reference data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range data.Vessels {
		if _, err := tx.ExecContext(ctx, Rebind(dialect, `
		INSERT INTO vessels (id, name, vessel_type, draft_meters, loa_meters, beam_meters)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			vessel_type = EXCLUDED.vessel_type,
			draft_meters = EXCLUDED.draft_meters,
			loa_meters = EXCLUDED.loa_meters,
			beam_meters = EXCLUDED.beam_meters;
		`), v.ID, v.Name, v.Type, v.DraftMeters, v.LOAMeters, v.BeamMeters); err != nil {
			return fmt.Errorf("seed reference data: insert vessel %q: %w", v.ID, err)
		}
	}

	for _, p := range data.Ports {
		if _, err := tx.ExecContext(ctx, Rebind(dialect, `
		INSERT INTO ports (id, name, unlocode, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			unlocode = EXCLUDED.unlocode,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude;
		`), p.ID, p.Name, p.UNLocode, p.Latitude, p.Longitude); err != nil {
			return fmt.Errorf("seed reference data: insert port %q: %w", p.ID, err)
		}
	}

	for _, c := range data.Constraints {
		active := true
		if c.Active != nil {
			active = *c.Active
		}
		if _, err := tx.ExecContext(ctx, Rebind(dialect, `
		INSERT INTO route_constraints (
			id, location_name, vessel_type, max_draft_meters, max_loa_meters, max_beam_meters, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET location_name = EXCLUDED.location_name,
			vessel_type = EXCLUDED.vessel_type,
			max_draft_meters = EXCLUDED.max_draft_meters,
			max_loa_meters = EXCLUDED.max_loa_meters,
			max_beam_meters = EXCLUDED.max_beam_meters,
			active = EXCLUDED.active;
		`), c.ID, c.LocationName, c.VesselType,
			nullFloat(c.MaxDraftMeters), nullFloat(c.MaxLOAMeters), nullFloat(c.MaxBeamMeters), active,
		); err != nil {
			return fmt.Errorf("seed reference data: insert constraint %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed reference data: commit tx: %w", err)
	}

	return nil
}

// SeedPattern writes a learned pattern directly. Used to import patterns
// learned elsewhere and in tests.
func SeedPattern(ctx context.Context, db *sql.DB, dialect Dialect, p domain.LearnedRoutePattern) error {
	payload, err := json.Marshal(p.WaypointPattern)
	if err != nil {
		return fmt.Errorf("seed pattern: encode waypoint pattern: %w", err)
	}

	_, err = db.ExecContext(ctx, Rebind(dialect, `
	INSERT INTO learned_route_patterns (
		origin_port_id, dest_port_id, vessel_type, pattern_name, observed_count,
		reliability, avg_distance_nm, avg_duration_hours, waypoint_pattern, last_observed_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (origin_port_id, dest_port_id, vessel_type) DO UPDATE
	SET pattern_name = EXCLUDED.pattern_name,
		observed_count = EXCLUDED.observed_count,
		reliability = EXCLUDED.reliability,
		avg_distance_nm = EXCLUDED.avg_distance_nm,
		avg_duration_hours = EXCLUDED.avg_duration_hours,
		waypoint_pattern = EXCLUDED.waypoint_pattern,
		last_observed_at = EXCLUDED.last_observed_at;
	`),
		p.OriginPortID, p.DestPortID, string(p.VesselType), p.PatternName, p.ObservedCount,
		p.Reliability, p.AvgDistanceNm, p.AvgDurationHours, string(payload), formatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("seed pattern %s->%s: %w", p.OriginPortID, p.DestPortID, err)
	}
	return nil
}
