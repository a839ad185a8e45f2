package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
	"voyage-route-service/internal/zones"
)

const DefaultLookupTimeout = 5 * time.Second

const constraintsUnavailableWarning = "Physical constraints could not be verified for this route"

// RouteSelector chooses between a learned pattern, a historical route and a
// freshly calculated route, validates the result against physical
// constraints and hands it to the store.
//
// Zones and Metrics are optional. The selector holds no mutable state and is
// safe for concurrent use.
type RouteSelector struct {
	Vessels     ports.VesselRepository
	Ports       ports.PortRepository
	Routes      ports.RouteRepository
	Constraints ports.ConstraintRepository
	Zones       *zones.Registry
	Metrics     *obs.Metrics

	// Deadline for the vessel, port and store lookups of one request.
	LookupTimeout time.Duration
}

func NewRouteSelector(
	vessels ports.VesselRepository,
	portRepo ports.PortRepository,
	routes ports.RouteRepository,
	constraints ports.ConstraintRepository,
) *RouteSelector {
	return &RouteSelector{
		Vessels:       vessels,
		Ports:         portRepo,
		Routes:        routes,
		Constraints:   constraints,
		LookupTimeout: DefaultLookupTimeout,
	}
}

// SelectRoute plans a route for the request.
//
// Priority: a trusted learned pattern, then a previously used route for the
// same origin, destination and vessel type, then a calculated route.
// Unknown vessel or port ids fail with domain.ErrNotFound. Failing to store
// the route does not fail the request.
func (s *RouteSelector) SelectRoute(ctx context.Context, req domain.RouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routes.SelectRoute")(&err)

	if strings.TrimSpace(req.VesselID) == "" || strings.TrimSpace(req.OriginPortID) == "" || strings.TrimSpace(req.DestPortID) == "" {
		return nil, errors.New("select route: vessel, origin and destination ids are required")
	}

	timeout := s.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	vessel, origin, dest, err := s.lookup(lookupCtx, req)
	if err != nil {
		return nil, fmt.Errorf("select route: %w", err)
	}

	route := s.choose(lookupCtx, vessel, origin, dest, req)

	constraints, cerr := s.Constraints.ListConstraints(lookupCtx, vessel.Type)
	if cerr != nil {
		log.Printf("req_id=%s op=routes.ListConstraints vessel_type=%s err=%v", obs.RequestID(ctx), vessel.Type, cerr)
		route.Warn(constraintsUnavailableWarning)
	} else {
		ValidateConstraints(route, constraints)
	}

	s.addZoneAdvisories(route, req)

	route.ID = uuid.NewString()
	if id, perr := s.Routes.CreateRoute(ctx, route); perr != nil {
		log.Printf("req_id=%s op=routes.CreateRoute route_id=%s err=%v", obs.RequestID(ctx), route.ID, perr)
		s.Metrics.PersistFailed()
	} else if id != "" {
		route.ID = id
	}

	s.Metrics.RouteSelected(string(route.Type))
	return route, nil
}

// lookup fetches the vessel and both ports concurrently.
func (s *RouteSelector) lookup(ctx context.Context, req domain.RouteRequest) (*domain.Vessel, *domain.Port, *domain.Port, error) {
	var (
		vessel       *domain.Vessel
		origin, dest *domain.Port
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Vessels.GetVessel(gctx, req.VesselID)
		if err != nil {
			return fmt.Errorf("get vessel %q: %w", req.VesselID, err)
		}
		vessel = v
		return nil
	})
	g.Go(func() error {
		p, err := s.Ports.GetPort(gctx, req.OriginPortID)
		if err != nil {
			return fmt.Errorf("get origin port %q: %w", req.OriginPortID, err)
		}
		origin = p
		return nil
	})
	g.Go(func() error {
		p, err := s.Ports.GetPort(gctx, req.DestPortID)
		if err != nil {
			return fmt.Errorf("get destination port %q: %w", req.DestPortID, err)
		}
		dest = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return vessel, origin, dest, nil
}

// choose applies the selection policy. Store lookup failures are logged and
// treated as "no prior data" so a calculated route is still produced.
func (s *RouteSelector) choose(ctx context.Context, vessel *domain.Vessel, origin, dest *domain.Port, req domain.RouteRequest) *domain.Route {
	reqID := obs.RequestID(ctx)

	pattern, err := s.Routes.FindLearnedPattern(ctx, origin.ID, dest.ID, vessel.Type)
	if err != nil {
		log.Printf("req_id=%s op=routes.FindLearnedPattern origin=%s dest=%s err=%v", reqID, origin.ID, dest.ID, err)
	} else if PatternTrusted(pattern) {
		return AdaptPattern(pattern, vessel, origin, dest, req)
	}

	hist, err := s.Routes.FindHistoricalRoute(ctx, origin.ID, dest.ID, vessel.Type)
	if err != nil {
		log.Printf("req_id=%s op=routes.FindHistoricalRoute origin=%s dest=%s err=%v", reqID, origin.ID, dest.ID, err)
	} else if HistoricalUsable(hist) {
		return AdaptHistorical(hist, vessel, origin, dest, req)
	}

	return CalculateRoute(vessel, origin, dest, req)
}

func (s *RouteSelector) addZoneAdvisories(route *domain.Route, req domain.RouteRequest) {
	if s.Zones == nil {
		return
	}

	var checked []domain.ZonePolygon
	if req.AvoidEcaZones {
		checked = append(checked, s.Zones.ByCategory(domain.ZoneECA)...)
	}
	if req.AvoidHighRiskAreas {
		checked = append(checked, s.Zones.ByCategory(domain.ZoneHighRisk)...)
	}
	if len(checked) == 0 {
		return
	}

	report := BuildZoneReport(route.Track(), checked)
	for _, w := range zoneAdvisories(report) {
		route.Warn(w)
	}
}
