package geo

import "voyage-route-service/internal/domain"

// Contains reports whether p lies inside the polygon using ray casting in the
// +longitude direction. Vertices are (lat, lon) pairs and the last vertex
// connects back to the first. Polygons with fewer than 3 vertices contain
// nothing. Points exactly on an edge or vertex have no defined answer.
func Contains(p domain.GeoPoint, vertices [][2]float64) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, xi := vertices[i][0], vertices[i][1]
		yj, xj := vertices[j][0], vertices[j][1]

		if (yi > p.Lat) != (yj > p.Lat) &&
			p.Lon < (xj-xi)*(p.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// FindMatchingZones returns the zones that contain p, in input order.
func FindMatchingZones(p domain.GeoPoint, zones []domain.ZonePolygon) []domain.ZonePolygon {
	out := []domain.ZonePolygon{}
	for _, z := range zones {
		if Contains(p, z.Vertices) {
			out = append(out, z)
		}
	}
	return out
}
