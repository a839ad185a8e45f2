package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"voyage-route-service/internal/domain"
)

type patternKey struct {
	origin, dest string
	vesselType   domain.VesselType
}

// MemoryStore is an in-process implementation of the store ports, used by
// tests in place of the SQL store.
type MemoryStore struct {
	mu          sync.RWMutex
	vessels     map[string]domain.Vessel
	ports       map[string]domain.Port
	constraints []domain.RouteConstraint
	routes      map[string]*domain.Route
	patterns    map[patternKey]*domain.LearnedRoutePattern

	// FailCreate makes CreateRoute fail; used to exercise persistence errors.
	FailCreate error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vessels:  make(map[string]domain.Vessel),
		ports:    make(map[string]domain.Port),
		routes:   make(map[string]*domain.Route),
		patterns: make(map[patternKey]*domain.LearnedRoutePattern),
	}
}

func (m *MemoryStore) PutVessel(v domain.Vessel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vessels[v.ID] = v
}

func (m *MemoryStore) PutPort(p domain.Port) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ports[p.ID] = p
}

func (m *MemoryStore) PutConstraint(c domain.RouteConstraint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = append(m.constraints, c)
}

func (m *MemoryStore) PutPattern(p domain.LearnedRoutePattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns[patternKey{p.OriginPortID, p.DestPortID, p.VesselType}] = &p
}

// Load copies reference seed data into the store.
func (m *MemoryStore) Load(data ReferenceSeed) error {
	if err := data.validate(); err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}
	for _, v := range data.Vessels {
		m.PutVessel(domain.Vessel{
			ID: v.ID, Name: v.Name, Type: domain.VesselType(v.Type),
			DraftMeters: v.DraftMeters, LOAMeters: v.LOAMeters, BeamMeters: v.BeamMeters,
		})
	}
	for _, p := range data.Ports {
		m.PutPort(domain.Port{
			ID: p.ID, Name: p.Name, UNLocode: p.UNLocode, Latitude: p.Latitude, Longitude: p.Longitude,
		})
	}
	for _, c := range data.Constraints {
		active := c.Active == nil || *c.Active
		m.PutConstraint(domain.RouteConstraint{
			ID: c.ID, LocationName: c.LocationName, VesselType: domain.VesselType(c.VesselType),
			MaxDraftMeters: c.MaxDraftMeters, MaxLOAMeters: c.MaxLOAMeters, MaxBeamMeters: c.MaxBeamMeters,
			Active: active,
		})
	}
	return nil
}

func (m *MemoryStore) GetVessel(_ context.Context, id string) (*domain.Vessel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vessels[id]
	if !ok {
		return nil, fmt.Errorf("get vessel %q: %w", id, domain.ErrNotFound)
	}
	return &v, nil
}

func (m *MemoryStore) GetPort(_ context.Context, id string) (*domain.Port, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.ports[id]
	if !ok {
		return nil, fmt.Errorf("get port %q: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) ListConstraints(_ context.Context, vesselType domain.VesselType) ([]domain.RouteConstraint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.RouteConstraint{}
	for _, c := range m.constraints {
		if !c.Active {
			continue
		}
		if c.VesselType != "" && c.VesselType != vesselType {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MemoryStore) FindLearnedPattern(_ context.Context, origin, dest string, vt domain.VesselType) (*domain.LearnedRoutePattern, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.patterns[patternKey{origin, dest, vt}]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) FindHistoricalRoute(_ context.Context, origin, dest string, vt domain.VesselType) (*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidates []*domain.Route
	for _, r := range m.routes {
		if r.OriginPortID == origin && r.DestPortID == dest && r.VesselType == vt && r.UsageCount >= 1 {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ConfidenceScore != b.ConfidenceScore {
			return a.ConfidenceScore > b.ConfidenceScore
		}
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return cloneRoute(candidates[0]), nil
}

func (m *MemoryStore) CreateRoute(_ context.Context, route *domain.Route) (string, error) {
	if m.FailCreate != nil {
		return "", fmt.Errorf("create route: %w", m.FailCreate)
	}
	if route == nil || route.ID == "" {
		return "", errors.New("create route: route id must be set")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneRoute(route)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.routes[cp.ID] = cp
	return cp.ID, nil
}

func (m *MemoryStore) GetRoute(_ context.Context, id string) (*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routes[id]
	if !ok {
		return nil, fmt.Errorf("get route %q: %w", id, domain.ErrNotFound)
	}
	return cloneRoute(r), nil
}

func (m *MemoryStore) RecordVoyage(_ context.Context, route *domain.Route, outcome domain.VoyageOutcome) (*domain.LearnedRoutePattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.routes[route.ID]
	if !ok {
		return nil, fmt.Errorf("record voyage: route %q: %w", route.ID, domain.ErrNotFound)
	}
	stored.UsageCount++

	key := patternKey{route.OriginPortID, route.DestPortID, route.VesselType}
	p := newVoyageSample(route, outcome).fold(m.patterns[key], route)
	m.patterns[key] = p

	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListVesselRoutes(_ context.Context, vesselID string, limit int) ([]*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 {
		limit = domain.DefaultRouteListLimit
	}

	out := []*domain.Route{}
	for _, r := range m.routes {
		if r.VesselID == vesselID {
			out = append(out, cloneRoute(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListLearnedPatterns(_ context.Context, f domain.PatternFilter) ([]*domain.LearnedRoutePattern, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultPatternListLimit
	}

	out := []*domain.LearnedRoutePattern{}
	for _, p := range m.patterns {
		switch {
		case f.OriginPortID != "" && p.OriginPortID != f.OriginPortID,
			f.DestPortID != "" && p.DestPortID != f.DestPortID,
			f.VesselType != "" && p.VesselType != f.VesselType,
			p.Reliability < f.MinReliability:
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Reliability != b.Reliability {
			return a.Reliability > b.Reliability
		}
		if a.ObservedCount != b.ObservedCount {
			return a.ObservedCount > b.ObservedCount
		}
		if a.OriginPortID != b.OriginPortID {
			return a.OriginPortID < b.OriginPortID
		}
		if a.DestPortID != b.DestPortID {
			return a.DestPortID < b.DestPortID
		}
		return a.VesselType < b.VesselType
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRoute(r *domain.Route) *domain.Route {
	cp := *r
	cp.Waypoints = append([]domain.Waypoint(nil), r.Waypoints...)
	cp.Warnings = append([]string{}, r.Warnings...)
	return &cp
}
