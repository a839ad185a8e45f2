package geo

import "voyage-route-service/internal/domain"

// Sub-divisions per route segment when detecting zone transitions.
const IntersectSampleSteps = 50

// IntersectRoute walks the route segment by segment and reports every passage
// through each zone. Transitions are detected by re-testing containment at
// IntersectSampleSteps evenly spaced points per segment, so entry and exit
// points are accurate to one sample step.
//
// A route that ends inside a zone is closed with its last waypoint as the
// exit point. Routes with fewer than two waypoints intersect nothing.
func IntersectRoute(waypoints []domain.GeoPoint, zones []domain.ZonePolygon) []domain.RouteZoneIntersection {
	results := []domain.RouteZoneIntersection{}
	if len(waypoints) < 2 {
		return results
	}

	for _, zone := range zones {
		inside := Contains(waypoints[0], zone.Vertices)
		var entry domain.GeoPoint
		entrySeg := -1
		if inside {
			entry = waypoints[0]
			entrySeg = 0
		}

		for seg := 0; seg < len(waypoints)-1; seg++ {
			start, end := waypoints[seg], waypoints[seg+1]

			for step := 1; step <= IntersectSampleSteps; step++ {
				sample := Interpolate(start, end, float64(step)/IntersectSampleSteps)
				now := Contains(sample, zone.Vertices)

				switch {
				case !inside && now:
					entry = sample
					entrySeg = seg
					inside = true
				case inside && !now:
					results = append(results, domain.RouteZoneIntersection{
						Zone:         zone,
						EntryPoint:   entry,
						ExitPoint:    sample,
						SegmentIndex: entrySeg,
					})
					inside = false
				}
			}
		}

		if inside {
			results = append(results, domain.RouteZoneIntersection{
				Zone:         zone,
				EntryPoint:   entry,
				ExitPoint:    waypoints[len(waypoints)-1],
				SegmentIndex: entrySeg,
			})
		}
	}

	return results
}
