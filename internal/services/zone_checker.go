package services

import (
	"context"
	"errors"
	"fmt"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
	"voyage-route-service/internal/zones"
)

// ZoneChecker answers compliance questions about tracks and stored routes
// against the zone registry.
type ZoneChecker struct {
	Zones   *zones.Registry
	Routes  ports.RouteRepository
	Metrics *obs.Metrics
}

func NewZoneChecker(reg *zones.Registry, routes ports.RouteRepository, m *obs.Metrics) *ZoneChecker {
	return &ZoneChecker{Zones: reg, Routes: routes, Metrics: m}
}

// Report intersects the track with the zones named by codes, or with every
// registered zone when codes is empty.
func (z *ZoneChecker) Report(ctx context.Context, track []domain.GeoPoint, codes []string) (_ domain.ZoneReport, err error) {
	defer obs.Time(ctx, "zones.Report")(&err)
	if z.Zones == nil {
		return domain.ZoneReport{}, errors.New("zone report: registry is nil")
	}

	selected, err := z.Zones.Select(codes)
	if err != nil {
		return domain.ZoneReport{}, fmt.Errorf("zone report: %w", err)
	}

	report := BuildZoneReport(track, selected)
	for _, e := range report.Zones {
		for i := 0; i < e.Crossings; i++ {
			z.Metrics.ZonePassage(e.Zone.Code)
		}
	}
	return report, nil
}

// RouteReport reports zone exposure of a stored route against every zone.
func (z *ZoneChecker) RouteReport(ctx context.Context, routeID string) (domain.ZoneReport, error) {
	route, err := z.Routes.GetRoute(ctx, routeID)
	if err != nil {
		return domain.ZoneReport{}, fmt.Errorf("route zone report: %w", err)
	}
	return z.Report(ctx, route.Track(), nil)
}

// Match returns the zones containing p.
func (z *ZoneChecker) Match(p domain.GeoPoint) []domain.ZonePolygon {
	if z.Zones == nil {
		return []domain.ZonePolygon{}
	}
	return z.Zones.Match(p)
}

// DistanceInPolygon measures how far the track runs inside an ad-hoc polygon.
func (z *ZoneChecker) DistanceInPolygon(track []domain.GeoPoint, polygon [][2]float64) float64 {
	return geo.DistanceInZone(track, polygon)
}
