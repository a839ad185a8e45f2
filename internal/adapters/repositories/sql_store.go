package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
)

// SQL flavour of the connected database.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return DialectSQLite, nil
	case "pgx":
		return DialectPostgres, nil
	}
	return 0, fmt.Errorf("unsupported database driver %q", driver)
}

// SQLStore implements the vessel, port, constraint and route ports on a
// database/sql handle. Queries are written with ? placeholders and rebound
// for Postgres.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{DB: db, Dialect: dialect}
}

// rebind rewrites ? placeholders to $1..$n for Postgres.
func (s *SQLStore) rebind(q string) string {
	return Rebind(s.Dialect, q)
}

func Rebind(d Dialect, q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) check() error {
	if s.DB == nil {
		return errors.New("sql store: db is nil")
	}
	return nil
}

// Return the vessel with the given id.
func (s *SQLStore) GetVessel(ctx context.Context, id string) (_ *domain.Vessel, err error) {
	defer obs.Time(ctx, "store.GetVessel")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`
	SELECT id, name, vessel_type, draft_meters, loa_meters, beam_meters
	FROM vessels
	WHERE id = ?;
	`)

	var v domain.Vessel
	var vt string
	err = s.DB.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &vt, &v.DraftMeters, &v.LOAMeters, &v.BeamMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get vessel %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vessel %q: query vessels table: %w", id, err)
	}
	v.Type = domain.VesselType(vt)

	return &v, nil
}

// Return the port with the given id.
func (s *SQLStore) GetPort(ctx context.Context, id string) (_ *domain.Port, err error) {
	defer obs.Time(ctx, "store.GetPort")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`
	SELECT id, name, unlocode, latitude, longitude
	FROM ports
	WHERE id = ?;
	`)

	var p domain.Port
	err = s.DB.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.UNLocode, &p.Latitude, &p.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get port %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get port %q: query ports table: %w", id, err)
	}

	return &p, nil
}

// Return active constraints for the vessel type and for all types.
func (s *SQLStore) ListConstraints(ctx context.Context, vesselType domain.VesselType) (_ []domain.RouteConstraint, err error) {
	defer obs.Time(ctx, "store.ListConstraints")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := s.rebind(`
	SELECT id, location_name, vessel_type, max_draft_meters, max_loa_meters, max_beam_meters, active
	FROM route_constraints
	WHERE active = ?
		AND (vessel_type = '' OR vessel_type = ?)
	ORDER BY location_name, id;
	`)

	rows, err := s.DB.QueryContext(ctx, q, true, string(vesselType))
	if err != nil {
		return nil, fmt.Errorf("list constraints: query route_constraints table: %w", err)
	}
	defer rows.Close()

	out := []domain.RouteConstraint{}
	for rows.Next() {
		var c domain.RouteConstraint
		var vt string
		var draft, loa, beam sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.LocationName, &vt, &draft, &loa, &beam, &c.Active); err != nil {
			return nil, fmt.Errorf("list constraints: scan row: %w", err)
		}
		c.VesselType = domain.VesselType(vt)
		c.MaxDraftMeters = floatPtr(draft)
		c.MaxLOAMeters = floatPtr(loa)
		c.MaxBeamMeters = floatPtr(beam)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list constraints: row iteration: %w", err)
	}

	return out, nil
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
