package geo

import "voyage-route-service/internal/domain"

// Sub-divisions per route segment when integrating distance inside a zone.
const DistanceSampleSteps = 100

// DistanceInZone returns the nautical miles of the route that lie inside the
// polygon, rounded to two decimals.
//
// Each segment is cut into DistanceSampleSteps sub-segments. A sub-segment
// with both ends inside counts fully, one that crosses the boundary counts
// for half its length. This is an approximation, not exact clipping, and
// reported distances depend on it.
func DistanceInZone(waypoints []domain.GeoPoint, vertices [][2]float64) float64 {
	if len(waypoints) < 2 {
		return 0
	}

	total := 0.0
	for seg := 0; seg < len(waypoints)-1; seg++ {
		start, end := waypoints[seg], waypoints[seg+1]

		prev := start
		prevInside := Contains(start, vertices)

		for step := 1; step <= DistanceSampleSteps; step++ {
			cur := Interpolate(start, end, float64(step)/DistanceSampleSteps)
			curInside := Contains(cur, vertices)

			switch {
			case prevInside && curInside:
				total += HaversineNm(prev, cur)
			case prevInside || curInside:
				total += HaversineNm(prev, cur) / 2
			}

			prev, prevInside = cur, curInside
		}
	}

	return Round2(total)
}
