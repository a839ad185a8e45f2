package ports

import (
	"context"
	"voyage-route-service/internal/domain"
)

// Port: the route and learned-pattern store.
//
// Optional lookups (patterns, historical routes) return (nil, nil) when no
// record exists. GetRoute returns an error wrapping domain.ErrNotFound.
type RouteRepository interface {
	// Return the learned pattern for the key, if any.
	FindLearnedPattern(ctx context.Context, originPortID, destPortID string, vesselType domain.VesselType) (*domain.LearnedRoutePattern, error)

	// Return the most trusted previously used route for the key, with waypoints.
	FindHistoricalRoute(ctx context.Context, originPortID, destPortID string, vesselType domain.VesselType) (*domain.Route, error)

	// Persist a route with its waypoints and return its identifier.
	CreateRoute(ctx context.Context, route *domain.Route) (string, error)

	// Return a stored route with waypoints.
	GetRoute(ctx context.Context, id string) (*domain.Route, error)

	// Return a vessel's routes with waypoints, newest first. A limit <= 0
	// means domain.DefaultRouteListLimit.
	ListVesselRoutes(ctx context.Context, vesselID string, limit int) ([]*domain.Route, error)

	// Return learned patterns matching the filter, most reliable first, then
	// most observed.
	ListLearnedPatterns(ctx context.Context, f domain.PatternFilter) ([]*domain.LearnedRoutePattern, error)

	// Count one completed voyage on the route and fold it into the learned
	// pattern for the route's key. The pattern update must be atomic per key.
	RecordVoyage(ctx context.Context, route *domain.Route, outcome domain.VoyageOutcome) (*domain.LearnedRoutePattern, error)
}
