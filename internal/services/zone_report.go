package services

import (
	"fmt"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"
)

// BuildZoneReport intersects the track with every zone and measures the
// distance sailed inside each zone that the track enters.
func BuildZoneReport(track []domain.GeoPoint, zones []domain.ZonePolygon) domain.ZoneReport {
	report := domain.ZoneReport{
		Intersections: geo.IntersectRoute(track, zones),
		Zones:         []domain.ZoneExposure{},
	}

	crossings := make(map[string]int, len(zones))
	for _, x := range report.Intersections {
		crossings[x.Zone.Code]++
	}

	total := 0.0
	for _, z := range zones {
		n, ok := crossings[z.Code]
		if !ok {
			continue
		}
		d := geo.DistanceInZone(track, z.Vertices)
		total += d
		report.Zones = append(report.Zones, domain.ZoneExposure{Zone: z, DistanceNm: d, Crossings: n})
	}
	report.TotalDistanceNm = geo.Round2(total)

	return report
}

// zoneAdvisories returns one warning per zone of the report. Routing does
// not avoid zones, so the planner is told where exposure remains.
func zoneAdvisories(report domain.ZoneReport) []string {
	out := make([]string, 0, len(report.Zones))
	for _, e := range report.Zones {
		out = append(out, fmt.Sprintf(
			"Route transits %s (%s) for %.2f nm; zone avoidance is not applied to the track",
			e.Zone.Name, e.Zone.Code, e.DistanceNm,
		))
	}
	return out
}
